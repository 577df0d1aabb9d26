package report

import (
	"encoding/json"
	"io"
	"log"
	"sync"

	"github.com/visiondatakit/go-skelannot/annotate/result"
)

// JSONWriter exports annotation output as JSON lines, the registration
// payload first followed by one frame object per line
type JSONWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
	err error
}

// jsonRegistration wraps the registration payload so frame lines and the
// schema line are distinguishable in the export stream
type jsonRegistration struct {
	Registration result.Registration `json:"registration"`
}

// NewJSONWriter creates a writer exporting to w
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		enc: json.NewEncoder(w),
	}
}

// Register writes the template schema line
func (jw *JSONWriter) Register(reg result.Registration) {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	jw.write(jsonRegistration{Registration: reg})
}

// Publish writes one frame line
func (jw *JSONWriter) Publish(frame int64, records []result.Record) {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	jw.write(Frame{Frame: frame, Records: records})
}

// Err returns the first write error encountered.  Once a write fails all
// subsequent output is skipped
func (jw *JSONWriter) Err() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.err
}

func (jw *JSONWriter) write(v any) {

	if jw.err != nil {
		return
	}

	if err := jw.enc.Encode(v); err != nil {
		log.Printf("annotation export write failed: %v", err)
		jw.err = err
	}
}
