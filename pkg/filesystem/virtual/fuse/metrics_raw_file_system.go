//go:build darwin || linux
// +build darwin linux

package fuse

import (
	"sync"
	"syscall"
	"time"

	"github.com/buildbarn/bb-storage/pkg/clock"
	"github.com/buildbarn/bb-storage/pkg/util"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/prometheus/client_golang/prometheus"

	"golang.org/x/sys/unix"
)

var (
	rawFileSystemOperationsPrometheusMetrics sync.Once

	rawFileSystemOperationsDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "buildbarn",
			Subsystem: "fuse",
			Name:      "raw_file_system_operations_duration_seconds",
			Help:      "Amount of time spent per operation on raw file system objects, in seconds.",
			Buckets:   util.DecimalExponentialBuckets(-3, 6, 2),
		},
		[]string{"operation", "status_code"})
)

// operationHistogram holds references to Prometheus metrics for a single
// FUSE operation that can never fail.
type operationHistogram struct {
	ok prometheus.Observer
}

func newOperationHistogram(operation string) operationHistogram {
	return operationHistogram{
		ok: rawFileSystemOperationsDurationSeconds.WithLabelValues(operation, "OK"),
	}
}

func (m *operationHistogram) observe(timeStart, timeStop time.Time) {
	m.ok.Observe(timeStop.Sub(timeStart).Seconds())
}

// operationHistogramWithStatus holds references to Prometheus metrics for
// a single FUSE operation that can fail with a fuse.Status.
type operationHistogramWithStatus struct {
	ok      prometheus.Observer
	failure prometheus.ObserverVec
}

func newOperationHistogramWithStatus(operation string) operationHistogramWithStatus {
	return operationHistogramWithStatus{
		ok:      rawFileSystemOperationsDurationSeconds.WithLabelValues(operation, "OK"),
		failure: rawFileSystemOperationsDurationSeconds.MustCurryWith(map[string]string{"operation": operation}),
	}
}

func (m *operationHistogramWithStatus) observe(s fuse.Status, timeStart, timeStop time.Time) {
	d := timeStop.Sub(timeStart).Seconds()
	if s == fuse.OK {
		m.ok.Observe(d)
	} else {
		// Use unix.ErrnoName() instead of fuse.Status.String().
		// The latter inserts OS specific errno integer values
		// into the error message, which is not desirable in
		// heterogeneous environments.
		m.failure.WithLabelValues(unix.ErrnoName(syscall.Errno(s))).Observe(d)
	}
}

var (
	// Already populate the HistogramVec with entries for all
	// operations that are implemented.
	operationHistogramLookup     = newOperationHistogramWithStatus("Lookup")
	operationHistogramForget     = newOperationHistogram("Forget")
	operationHistogramGetAttr    = newOperationHistogramWithStatus("GetAttr")
	operationHistogramMknod      = newOperationHistogramWithStatus("Mknod")
	operationHistogramOpen       = newOperationHistogramWithStatus("Open")
	operationHistogramRead       = newOperationHistogramWithStatus("Read")
	operationHistogramRelease    = newOperationHistogram("Release")
	operationHistogramWrite      = newOperationHistogramWithStatus("Write")
	operationHistogramFlush      = newOperationHistogramWithStatus("Flush")
	operationHistogramFsync      = newOperationHistogramWithStatus("Fsync")
	operationHistogramOpenDir    = newOperationHistogramWithStatus("OpenDir")
	operationHistogramReadDir    = newOperationHistogramWithStatus("ReadDir")
	operationHistogramReleaseDir = newOperationHistogram("ReleaseDir")
	operationHistogramStatFs     = newOperationHistogramWithStatus("StatFs")
)

type metricsRawFileSystem struct {
	fuse.RawFileSystem

	clock clock.Clock
}

// NewMetricsRawFileSystem creates a decorator for fuse.RawFileSystem
// that exposes Prometheus metrics for each of the operations invoked.
// Operations that are not instrumented are forwarded to the base
// without recording any metrics.
func NewMetricsRawFileSystem(base fuse.RawFileSystem, clock clock.Clock) fuse.RawFileSystem {
	rawFileSystemOperationsPrometheusMetrics.Do(func() {
		prometheus.MustRegister(rawFileSystemOperationsDurationSeconds)
	})

	return &metricsRawFileSystem{
		RawFileSystem: base,
		clock:         clock,
	}
}

func (rfs *metricsRawFileSystem) Lookup(cancel <-chan struct{}, header *fuse.InHeader, name string, out *fuse.EntryOut) fuse.Status {
	timeStart := rfs.clock.Now()
	s := rfs.RawFileSystem.Lookup(cancel, header, name, out)
	operationHistogramLookup.observe(s, timeStart, rfs.clock.Now())
	return s
}

func (rfs *metricsRawFileSystem) Forget(nodeID, nLookup uint64) {
	timeStart := rfs.clock.Now()
	rfs.RawFileSystem.Forget(nodeID, nLookup)
	operationHistogramForget.observe(timeStart, rfs.clock.Now())
}

func (rfs *metricsRawFileSystem) GetAttr(cancel <-chan struct{}, input *fuse.GetAttrIn, out *fuse.AttrOut) fuse.Status {
	timeStart := rfs.clock.Now()
	s := rfs.RawFileSystem.GetAttr(cancel, input, out)
	operationHistogramGetAttr.observe(s, timeStart, rfs.clock.Now())
	return s
}

func (rfs *metricsRawFileSystem) Mknod(cancel <-chan struct{}, input *fuse.MknodIn, name string, out *fuse.EntryOut) fuse.Status {
	timeStart := rfs.clock.Now()
	s := rfs.RawFileSystem.Mknod(cancel, input, name, out)
	operationHistogramMknod.observe(s, timeStart, rfs.clock.Now())
	return s
}

func (rfs *metricsRawFileSystem) Open(cancel <-chan struct{}, input *fuse.OpenIn, out *fuse.OpenOut) fuse.Status {
	timeStart := rfs.clock.Now()
	s := rfs.RawFileSystem.Open(cancel, input, out)
	operationHistogramOpen.observe(s, timeStart, rfs.clock.Now())
	return s
}

func (rfs *metricsRawFileSystem) Read(cancel <-chan struct{}, input *fuse.ReadIn, buf []byte) (fuse.ReadResult, fuse.Status) {
	timeStart := rfs.clock.Now()
	r, s := rfs.RawFileSystem.Read(cancel, input, buf)
	operationHistogramRead.observe(s, timeStart, rfs.clock.Now())
	return r, s
}

func (rfs *metricsRawFileSystem) Release(cancel <-chan struct{}, input *fuse.ReleaseIn) {
	timeStart := rfs.clock.Now()
	rfs.RawFileSystem.Release(cancel, input)
	operationHistogramRelease.observe(timeStart, rfs.clock.Now())
}

func (rfs *metricsRawFileSystem) Write(cancel <-chan struct{}, input *fuse.WriteIn, data []byte) (uint32, fuse.Status) {
	timeStart := rfs.clock.Now()
	r, s := rfs.RawFileSystem.Write(cancel, input, data)
	operationHistogramWrite.observe(s, timeStart, rfs.clock.Now())
	return r, s
}

func (rfs *metricsRawFileSystem) Flush(cancel <-chan struct{}, input *fuse.FlushIn) fuse.Status {
	timeStart := rfs.clock.Now()
	s := rfs.RawFileSystem.Flush(cancel, input)
	operationHistogramFlush.observe(s, timeStart, rfs.clock.Now())
	return s
}

func (rfs *metricsRawFileSystem) Fsync(cancel <-chan struct{}, input *fuse.FsyncIn) fuse.Status {
	timeStart := rfs.clock.Now()
	s := rfs.RawFileSystem.Fsync(cancel, input)
	operationHistogramFsync.observe(s, timeStart, rfs.clock.Now())
	return s
}

func (rfs *metricsRawFileSystem) OpenDir(cancel <-chan struct{}, input *fuse.OpenIn, out *fuse.OpenOut) fuse.Status {
	timeStart := rfs.clock.Now()
	s := rfs.RawFileSystem.OpenDir(cancel, input, out)
	operationHistogramOpenDir.observe(s, timeStart, rfs.clock.Now())
	return s
}

func (rfs *metricsRawFileSystem) ReadDir(cancel <-chan struct{}, input *fuse.ReadIn, out *fuse.DirEntryList) fuse.Status {
	timeStart := rfs.clock.Now()
	s := rfs.RawFileSystem.ReadDir(cancel, input, out)
	operationHistogramReadDir.observe(s, timeStart, rfs.clock.Now())
	return s
}

func (rfs *metricsRawFileSystem) ReleaseDir(input *fuse.ReleaseIn) {
	timeStart := rfs.clock.Now()
	rfs.RawFileSystem.ReleaseDir(input)
	operationHistogramReleaseDir.observe(timeStart, rfs.clock.Now())
}

func (rfs *metricsRawFileSystem) StatFs(cancel <-chan struct{}, input *fuse.InHeader, out *fuse.StatfsOut) fuse.Status {
	timeStart := rfs.clock.Now()
	s := rfs.RawFileSystem.StatFs(cancel, input, out)
	operationHistogramStatFs.observe(s, timeStart, rfs.clock.Now())
	return s
}
