package monitoring

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pagesim/mem/vm/paging"
	"go.uber.org/mock/gomock"
)

func get(h http.Handler, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	return rec
}

var _ = Describe("Monitor", func() {
	var (
		mockCtrl *gomock.Controller
		m        *Monitor
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		m = NewMonitor().WithLogger(log.New(io.Discard, "", 0))
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should refuse privileged ports", func() {
		m.WithPortNumber(80)
		Expect(m.portNumber).To(Equal(0))

		m.WithPortNumber(8080)
		Expect(m.portNumber).To(Equal(8080))
	})

	It("should list managers in registration order", func() {
		for _, name := range []string{"B", "A"} {
			s := NewMockSubject(mockCtrl)
			s.EXPECT().Name().Return(name).AnyTimes()
			m.RegisterManager(s)
		}

		rec := get(m.Router(), "/api/managers")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`["B","A"]`))
	})

	It("should report stats of a manager", func() {
		s := NewMockSubject(mockCtrl)
		s.EXPECT().Name().Return("MemoryManager").AnyTimes()
		s.EXPECT().Snapshot().Return(paging.Snapshot{
			Name:       "MemoryManager",
			Policy:     "lru",
			FrameCount: 3,
			Stats:      paging.Stats{Faults: 4, DiskReads: 4, DiskWrites: 1},
			Frames: []paging.FrameSnapshot{
				{Frame: 0, Occupied: true, Page: 7, Dirty: true},
				{Frame: 1, Occupied: true, Page: 2},
				{Frame: 2},
			},
		})
		m.RegisterManager(s)

		rec := get(m.Router(), "/api/stats/MemoryManager")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`{
			"faults": 4, "disk_reads": 4, "disk_writes": 1,
			"frame_count": 3, "resident": 2, "dirty": 1
		}`))
	})

	It("should return 404 for unknown managers", func() {
		rec := get(m.Router(), "/api/stats/nobody")
		Expect(rec.Code).To(Equal(http.StatusNotFound))

		rec = get(m.Router(), "/api/manager/nobody")
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should serialize the details of a real manager", func() {
		mgr, err := paging.MakeBuilder().
			WithFrameCount(2).
			WithPolicyKind(paging.PolicyClock).
			Build("MemoryManager")
		Expect(err).ToNot(HaveOccurred())
		Expect(mgr.Write(5)).To(Succeed())
		m.RegisterManager(mgr)

		rec := get(m.Router(), "/api/manager/MemoryManager")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(json.Valid(rec.Body.Bytes())).To(BeTrue())
	})

	It("should track progress bars", func() {
		bar := m.CreateProgressBar("replay", 10)
		other := m.CreateProgressBar("other", 5)
		bar.IncrementInProgress(4)
		bar.MoveInProgressToFinished(3)
		other.SetFinished(5)
		m.CompleteProgressBar(other)

		rec := get(m.Router(), "/api/progress")

		var bars []progressRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].ID).To(Equal(bar.ID))
		Expect(bars[0].Name).To(Equal("replay"))
		Expect(bars[0].Total).To(Equal(uint64(10)))
		Expect(bars[0].Finished).To(Equal(uint64(3)))
		Expect(bars[0].InProgress).To(Equal(uint64(1)))
	})

	It("should report resource usage", func() {
		rec := get(m.Router(), "/api/resource")

		Expect(rec.Code).To(Equal(http.StatusOK))

		var rsp resourceRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should collect a CPU profile", func() {
		m.profileDuration = 10 * time.Millisecond

		rec := get(m.Router(), "/api/profile")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(json.Valid(rec.Body.Bytes())).To(BeTrue())
	})

	It("should serve the dashboard", func() {
		rec := get(m.Router(), "/")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(HavePrefix("<!DOCTYPE html>"))
	})

	It("should not open a browser before the server starts", func() {
		Expect(m.URL()).To(BeEmpty())
		Expect(m.OpenInBrowser()).ToNot(Succeed())
	})

	It("should serve on a random port", func() {
		s := NewMockSubject(mockCtrl)
		s.EXPECT().Name().Return("MemoryManager").AnyTimes()
		m.RegisterManager(s)

		addr, err := m.StartServer()
		Expect(err).ToNot(HaveOccurred())
		Expect(m.URL()).To(Equal("http://" + addr))

		rsp, err := http.Get(m.URL() + "/api/managers")
		Expect(err).ToNot(HaveOccurred())
		defer rsp.Body.Close()

		body, err := io.ReadAll(rsp.Body)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(body)).To(MatchJSON(`["MemoryManager"]`))
	})
})
