package progrock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/zerr"
)

var _ progrock.Writer = (*StageLog)(nil)

// StageLog is a progrock.Writer keeping the output of each vertex in its own file.
// Files are named after the order the vertices started in, e.g. "03-ruby.log",
// and end with a status line once the vertex completes.
type StageLog struct {
	dir string

	mu    sync.Mutex
	files map[string]*stageFile
	order int
}

type stageFile struct {
	f    *os.File
	done bool
}

// NewStageLog creates a StageLog writing below dir.
func NewStageLog(dir string) *StageLog {
	return &StageLog{
		dir:   dir,
		files: make(map[string]*stageFile),
	}
}

// WriteStatus appends the logs of the update and finalizes completed vertices.
func (s *StageLog) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs error
	for _, v := range update.GetVertexes() {
		if _, err := s.open(v.GetId(), v.GetName()); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	for _, l := range update.GetLogs() {
		sf, ok := s.files[l.GetVertex()]
		if !ok || sf.done {
			continue
		}
		if _, err := sf.f.Write(l.GetData()); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrJournalFailed.Error()), "path", sf.f.Name()))
		}
	}

	for _, v := range update.GetVertexes() {
		if v.Completed == nil {
			continue
		}
		sf := s.files[v.GetId()]
		if sf == nil || sf.done {
			continue
		}
		sf.done = true
		_, werr := fmt.Fprintf(sf.f, "== %s %s ==\n", v.GetName(), vertexStatus(v))
		errs = errors.Join(errs, werr, sf.f.Close())
	}
	return errs
}

// Close closes the files of vertices that never completed.
func (s *StageLog) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs error
	for _, sf := range s.files {
		if sf.done {
			continue
		}
		sf.done = true
		errs = errors.Join(errs, sf.f.Close())
	}
	return errs
}

func (s *StageLog) open(id, name string) (*stageFile, error) {
	if sf, ok := s.files[id]; ok {
		return sf, nil
	}

	s.order++
	path := filepath.Join(s.dir, fmt.Sprintf("%02d-%s.log", s.order, fileName(name)))
	f, err := os.Create(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrJournalFailed.Error()), "path", path)
	}

	sf := &stageFile{f: f}
	s.files[id] = sf
	return sf, nil
}

func vertexStatus(v *progrock.Vertex) string {
	switch {
	case v.Error != nil:
		return string(domain.StageStatusFailed) + ": " + v.GetError()
	case v.GetCanceled():
		return "canceled"
	case v.GetCached():
		return string(domain.StageStatusCached)
	default:
		return string(domain.StageStatusCompleted)
	}
}

func fileName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == os.PathSeparator || r == ' ' {
			return '_'
		}
		return r
	}, name)
}
