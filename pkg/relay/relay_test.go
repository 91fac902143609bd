package relay_test

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/jarcoal/httpmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nathikazad/lura-bletest/pkg/relay"
)

const endpoint = "http://sink.example"

var _ = Describe("Forwarder", func() {
	var f *relay.Forwarder

	postCount := func() int {
		return httpmock.GetCallCountInfo()[http.MethodPost+" "+endpoint+"/number"]
	}

	respondWith := func(status int) {
		httpmock.RegisterResponder(http.MethodPost, endpoint+"/number",
			httpmock.NewStringResponder(status, ""))
	}

	sent := func() uint64 { return f.Stats().Sent }
	failed := func() uint64 { return f.Stats().Failed }
	throttled := func() uint64 { return f.Stats().Throttled }

	BeforeEach(func() {
		httpmock.Activate()
		DeferCleanup(httpmock.DeactivateAndReset)
		f = relay.New(endpoint)
	})

	It("posts numeric tokens as JSON", func() {
		var body []byte
		httpmock.RegisterResponder(http.MethodPost, endpoint+"/number", func(r *http.Request) (*http.Response, error) {
			Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))
			var err error
			body, err = io.ReadAll(r.Body)
			Expect(err).NotTo(HaveOccurred())
			return httpmock.NewStringResponse(http.StatusOK, ""), nil
		})

		f.Forward(context.Background(), "42")
		Eventually(sent).Should(Equal(uint64(1)))
		Expect(body).To(MatchJSON(`{"number": 42}`))
	})

	It("ignores non-numeric tokens", func() {
		respondWith(http.StatusOK)
		f.Forward(context.Background(), "hello")
		Expect(f.Stats().Skipped).To(Equal(uint64(1)))
		Expect(postCount()).To(Equal(0))
	})

	It("drops readings inside the minimum interval", func() {
		respondWith(http.StatusOK)
		f.SetMinInterval(time.Hour)

		f.Forward(context.Background(), "1")
		Eventually(sent).Should(Equal(uint64(1)))

		f.Forward(context.Background(), "2")
		Expect(throttled()).To(Equal(uint64(1)))
		Expect(postCount()).To(Equal(1))
	})

	It("advances the throttle clock only on acknowledged deliveries", func() {
		respondWith(http.StatusServiceUnavailable)
		f.SetMinInterval(time.Hour)

		f.Forward(context.Background(), "1")
		Eventually(failed).Should(Equal(uint64(1)))

		// The failed delivery left the gate open.
		respondWith(http.StatusOK)
		f.Forward(context.Background(), "2")
		Eventually(sent).Should(Equal(uint64(1)))
		Expect(f.Stats().Throttled).To(Equal(uint64(0)))
	})

	It("does not retry failed deliveries", func() {
		respondWith(http.StatusInternalServerError)
		f.Forward(context.Background(), "9")
		Eventually(failed).Should(Equal(uint64(1)))
		Consistently(postCount).Should(Equal(1))
	})

	It("posts immediately after Reset", func() {
		respondWith(http.StatusOK)
		f.SetMinInterval(time.Hour)

		f.Forward(context.Background(), "1")
		Eventually(sent).Should(Equal(uint64(1)))

		f.Forward(context.Background(), "2")
		Expect(throttled()).To(Equal(uint64(1)))

		f.Reset()
		f.Forward(context.Background(), "3")
		Eventually(sent).Should(Equal(uint64(2)))
	})

	It("delivers without spacing when the gate is disabled", func() {
		respondWith(http.StatusOK)
		f.SetMinInterval(0)

		f.Forward(context.Background(), "1")
		Eventually(sent).Should(Equal(uint64(1)))
		f.Forward(context.Background(), "2")
		Eventually(sent).Should(Equal(uint64(2)))
		Expect(f.Stats().Throttled).To(Equal(uint64(0)))
	})

	It("switches endpoints at runtime", func() {
		const second = "http://sink2.example"
		httpmock.RegisterResponder(http.MethodPost, second+"/number",
			httpmock.NewStringResponder(http.StatusOK, ""))

		f.SetEndpoint(second + "/")
		Expect(f.Endpoint()).To(Equal(second))

		f.Forward(context.Background(), "7")
		Eventually(sent).Should(Equal(uint64(1)))
		Expect(httpmock.GetCallCountInfo()[http.MethodPost+" "+second+"/number"]).To(Equal(1))
	})

	It("falls back to the default endpoint", func() {
		Expect(relay.New("").Endpoint()).To(Equal(relay.DefaultEndpoint))

		f.SetEndpoint("")
		Expect(f.Endpoint()).To(Equal(relay.DefaultEndpoint))
	})
})

var _ = Describe("HttpError", func() {
	It("classifies server overload as temporary", func() {
		err := &relay.HttpError{Code: http.StatusServiceUnavailable}
		Expect(err.Temporary()).To(BeTrue())
		Expect(err.Error()).To(Equal(http.StatusText(http.StatusServiceUnavailable)))
	})

	It("classifies rejections as permanent", func() {
		err := &relay.HttpError{Code: http.StatusBadRequest, Message: "malformed reading"}
		Expect(err.Temporary()).To(BeFalse())
		Expect(err.Error()).To(Equal("malformed reading"))
	})
})
