package rest

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "REST Transport Suite")
}

var _ = Describe("OpenAPI contract", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).ToNot(HaveOccurred())
		Expect(doc.Validate(loader.Context)).To(Succeed())
	})

	It("should document every registered route", func() {
		expected := []string{
			"/health",
			"/ping",
			"/auth/login",
			"/auth/refresh",
			"/assignments",
			"/assignments/pending",
			"/assignments/active",
			"/assignments/{id}/approve",
			"/assignments/{id}/reject",
			"/assignments/{id}/end",
			"/operators/{id}/reassign",
			"/registrations/operators",
			"/locations",
			"/locations/{id}/beats",
			"/dashboard",
		}

		for _, path := range expected {
			Expect(doc.Paths.Find(path)).ToNot(BeNil(), "missing path %s", path)
		}
	})

	It("should require a bearer token on lifecycle operations", func() {
		for _, path := range []string{"/assignments", "/registrations/operators"} {
			item := doc.Paths.Find(path)
			Expect(item).ToNot(BeNil())
			Expect(item.Post.Security).ToNot(BeNil())
		}
	})

	It("should require a rejection reason in the reject payload", func() {
		item := doc.Paths.Find("/assignments/{id}/reject")
		Expect(item).ToNot(BeNil())

		body := item.Patch.RequestBody.Value.Content.Get("application/json")
		Expect(body).ToNot(BeNil())
		Expect(body.Schema.Value.Required).To(ContainElement("reason"))
	})
})
