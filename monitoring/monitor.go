// Package monitoring serves the state of running memory managers over HTTP so
// that a long replay can be watched from a browser.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/rs/xid"
	"github.com/sarchlab/pagesim/mem/vm/paging"
	"github.com/sarchlab/pagesim/monitoring/web"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// A Subject is something the monitor can show. *paging.Manager is one.
type Subject interface {
	Name() string
	Snapshot() paging.Snapshot
}

// Monitor turns a simulation into a server that external tools can poll.
type Monitor struct {
	portNumber      int
	profileDuration time.Duration
	logger          *log.Logger

	subjectsLock sync.Mutex
	subjects     []Subject

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar

	addr string
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		profileDuration: time.Second,
		logger:          log.New(os.Stderr, "", 0),
	}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// rejected and a random port is used instead.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		m.logger.Printf(
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithLogger sets where the monitor reports its address and failures.
func (m *Monitor) WithLogger(logger *log.Logger) *Monitor {
	m.logger = logger
	return m
}

// RegisterManager registers a subject to be monitored. Subjects are listed in
// the order they are registered.
func (m *Monitor) RegisterManager(s Subject) {
	m.subjectsLock.Lock()
	defer m.subjectsLock.Unlock()

	m.subjects = append(m.subjects, s)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the handler that serves the API and the web page.
func (m *Monitor) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/managers", m.listManagers)
	r.HandleFunc("/api/manager/{name}", m.managerDetails)
	r.HandleFunc("/api/stats/{name}", m.managerStats)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server in the background and
// returns the address it listens on.
func (m *Monitor) StartServer() (string, error) {
	listener, err := net.Listen("tcp", "localhost:"+strconv.Itoa(m.portNumber))
	if err != nil {
		return "", fmt.Errorf("monitor cannot listen: %w", err)
	}

	m.addr = listener.Addr().String()
	m.logger.Printf("Monitoring simulation with %s", m.URL())

	go func() {
		err := http.Serve(listener, m.Router())
		if err != nil {
			m.logger.Printf("monitoring server stopped: %v", err)
		}
	}()

	return m.addr, nil
}

// URL returns the address of the web page. It is empty until the server
// starts.
func (m *Monitor) URL() string {
	if m.addr == "" {
		return ""
	}

	return "http://" + m.addr
}

// OpenInBrowser opens the web page in the default browser.
func (m *Monitor) OpenInBrowser() error {
	if m.addr == "" {
		return fmt.Errorf("monitoring server is not started")
	}

	return browser.OpenURL(m.URL())
}

func (m *Monitor) listManagers(w http.ResponseWriter, _ *http.Request) {
	m.subjectsLock.Lock()
	names := make([]string, 0, len(m.subjects))
	for _, s := range m.subjects {
		names = append(names, s.Name())
	}
	m.subjectsLock.Unlock()

	writeJSON(w, names)
}

func (m *Monitor) managerDetails(w http.ResponseWriter, r *http.Request) {
	subject := m.findSubjectOr404(w, mux.Vars(r)["name"])
	if subject == nil {
		return
	}

	snapshot := subject.Snapshot()

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&snapshot)
	serializer.SetMaxDepth(2)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type statsRsp struct {
	paging.Stats
	FrameCount int `json:"frame_count"`
	Resident   int `json:"resident"`
	Dirty      int `json:"dirty"`
}

func (m *Monitor) managerStats(w http.ResponseWriter, r *http.Request) {
	subject := m.findSubjectOr404(w, mux.Vars(r)["name"])
	if subject == nil {
		return
	}

	snapshot := subject.Snapshot()
	rsp := statsRsp{
		Stats:      snapshot.Stats,
		FrameCount: snapshot.FrameCount,
	}

	for _, f := range snapshot.Frames {
		if f.Occupied {
			rsp.Resident++
		}

		if f.Dirty {
			rsp.Dirty++
		}
	}

	writeJSON(w, rsp)
}

func (m *Monitor) findSubjectOr404(
	w http.ResponseWriter,
	name string,
) Subject {
	m.subjectsLock.Lock()
	defer m.subjectsLock.Unlock()

	for _, s := range m.subjects {
		if s.Name() == name {
			return s
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Manager not found"))
	dieOnErr(err)

	return nil
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]progressRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.snapshot())
	}
	m.progressBarsLock.Unlock()

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].StartTime.Before(bars[j].StartTime)
	})

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	memoryInfo, err := proc.MemoryInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(data)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
