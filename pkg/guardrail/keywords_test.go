package guardrail_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tickerwise/tickerwise/pkg/guardrail"
)

var _ = Describe("LoadKeywords", func() {
	It("replaces a category's list and keeps the rest", func() {
		path := filepath.Join(GinkgoT().TempDir(), "keywords.yaml")
		Expect(os.WriteFile(path, []byte("animals:\n  - llama\n"), 0o644)).To(Succeed())

		keywords, err := guardrail.LoadKeywords(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(keywords[guardrail.CategoryAnimals]).To(Equal([]string{"llama"}))
		Expect(keywords[guardrail.CategoryAstrology]).NotTo(BeEmpty())

		classifier := guardrail.New(keywords)
		Expect(classifier.Classify("my llama is hungry").Allowed).To(BeFalse())
		Expect(classifier.Classify("my dog is hungry").Allowed).To(BeTrue())
	})

	It("supports caller-defined categories", func() {
		path := filepath.Join(GinkgoT().TempDir(), "keywords.yaml")
		Expect(os.WriteFile(path, []byte("sports:\n  - football\n"), 0o644)).To(Succeed())

		keywords, err := guardrail.LoadKeywords(path)
		Expect(err).NotTo(HaveOccurred())

		verdict := guardrail.New(keywords).Classify("who won the football game")
		Expect(verdict.Allowed).To(BeFalse())
		Expect(verdict.Category).To(Equal("sports"))
	})

	It("fails on a missing file", func() {
		_, err := guardrail.LoadKeywords("/nonexistent/keywords.yaml")
		Expect(err).To(HaveOccurred())
	})
})
