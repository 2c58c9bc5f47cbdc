package logger_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tickerwise/tickerwise/pkg/logger"
)

var _ = Describe("New", func() {
	It("writes info logs", func() {
		var buf bytes.Buffer
		l := logger.NewWithWriters(false, "info", &buf)
		l.Info("hello")

		Expect(buf.String()).To(ContainSubstring("hello"))
	})

	It("filters debug logs at info level", func() {
		var buf bytes.Buffer
		l := logger.NewWithWriters(false, "info", &buf)
		l.Debug("hidden")

		Expect(buf.String()).To(BeEmpty())
	})

	It("emits debug logs when the debug flag is set", func() {
		var buf bytes.Buffer
		l := logger.NewWithWriters(true, "error", &buf)
		l.Debug("visible")

		Expect(buf.String()).To(ContainSubstring("visible"))
	})

	It("respects the level string", func() {
		var buf bytes.Buffer
		l := logger.NewWithWriters(false, "error", &buf)
		l.Warn("quiet")
		l.Error("loud")

		Expect(buf.String()).NotTo(ContainSubstring("quiet"))
		Expect(buf.String()).To(ContainSubstring("loud"))
	})

	It("writes to multiple writers", func() {
		var buf1, buf2 bytes.Buffer
		l := logger.NewWithWriters(false, "info", &buf1, &buf2)
		l.Info("multi")

		Expect(buf1.String()).To(ContainSubstring("multi"))
		Expect(buf2.String()).To(ContainSubstring("multi"))
	})
})
