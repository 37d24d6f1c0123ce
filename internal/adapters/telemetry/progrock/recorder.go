// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/rbwasm/internal/core/ports"
	"go.trai.ch/zerr"
)

// JournalFile is the name of the raw progress journal written next to the stage logs.
const JournalFile = "progress.jsonl"

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
// Updates are dropped until a consumer is attached with Journal.
type Recorder struct {
	sink *fanout
	rec  *progrock.Recorder
	seq  atomic.Uint64
}

// New creates a new Recorder without consumers.
func New() *Recorder {
	return NewRecorder()
}

// NewRecorder creates a new Recorder forwarding every update to ws.
func NewRecorder(ws ...progrock.Writer) *Recorder {
	sink := &fanout{writers: ws}
	return &Recorder{
		sink: sink,
		rec:  progrock.NewRecorder(sink),
	}
}

// Record starts recording a new vertex.
// Vertices are keyed by a sequence number so repeated stage names stay distinct.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(strconv.FormatUint(r.seq.Add(1), 10) + "/" + name)
	vertex := &Vertex{vertex: r.rec.Vertex(d, name)}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Journal writes one log file per vertex and the raw progrock journal into dir.
func (r *Recorder) Journal(dir string) error {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrJournalFailed.Error()), "dir", dir)
	}

	journal, err := progrock.CreateJournal(filepath.Join(dir, JournalFile))
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrJournalFailed.Error()), "dir", dir)
	}

	r.sink.attach(journal, NewStageLog(dir))
	return nil
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.rec.Close()
}

// fanout is a progrock.Writer whose consumers can be attached after the recorder exists.
type fanout struct {
	mu      sync.Mutex
	writers progrock.MultiWriter
}

func (f *fanout) attach(ws ...progrock.Writer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writers = append(f.writers, ws...)
}

func (f *fanout) WriteStatus(update *progrock.StatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writers.WriteStatus(update)
}

func (f *fanout) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := f.writers.Close()
	f.writers = nil
	return err
}
