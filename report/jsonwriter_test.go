package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/visiondatakit/go-skelannot/annotate/result"
)

// TestJSONWriterWireFormat pins the exported field names, they are a wire
// contract for downstream dataset consumers
func TestJSONWriterWireFormat(t *testing.T) {

	var buf bytes.Buffer

	jw := NewJSONWriter(&buf)

	jw.Register(result.Registration{
		SessionID:    "s1",
		TemplateID:   "person-v1",
		TemplateName: "Person",
		KeyPoints:    []result.RegistrationKeyPoint{{Label: "head", Index: 0}},
		Skeleton:     []result.RegistrationEdge{{Joint1: 0, Joint2: 1}},
	})

	jw.Publish(1, testRecords())

	if err := jw.Err(); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	scanner := bufio.NewScanner(&buf)

	if !scanner.Scan() {
		t.Fatalf("no registration line written")
	}

	regLine := scanner.Text()

	for _, field := range []string{
		`"registration"`, `"sessionId"`, `"templateId"`, `"templateName"`,
		`"keyPoints"`, `"label"`, `"index"`, `"skeleton"`, `"joint1"`, `"joint2"`,
	} {
		if !strings.Contains(regLine, field) {
			t.Errorf("registration line missing field %s: %s", field, regLine)
		}
	}

	if !scanner.Scan() {
		t.Fatalf("no frame line written")
	}

	frameLine := scanner.Text()

	for _, field := range []string{
		`"frame"`, `"records"`, `"labelId"`, `"instanceId"`,
		`"pose"`, `"keypoints"`, `"x"`, `"y"`, `"state"`,
	} {
		if !strings.Contains(frameLine, field) {
			t.Errorf("frame line missing field %s: %s", field, frameLine)
		}
	}

	var frame Frame

	if err := json.Unmarshal([]byte(frameLine), &frame); err != nil {
		t.Fatalf("frame line not valid JSON: %v", err)
	}

	if frame.Frame != 1 || len(frame.Records) != 1 {
		t.Errorf("frame content wrong: %+v", frame)
	}

	rec := frame.Records[0]

	if rec.Pose != result.PoseUnset {
		t.Errorf("default pose must be %q, got %q", result.PoseUnset, rec.Pose)
	}

	if rec.Keypoints[0].State != result.RigDerived {
		t.Errorf("keypoint state lost in roundtrip: %+v", rec.Keypoints[0])
	}
}

func TestJSONWriterStopsOnError(t *testing.T) {

	jw := NewJSONWriter(failingWriter{})

	jw.Publish(1, nil)

	if jw.Err() == nil {
		t.Errorf("write error not surfaced")
	}

	// subsequent writes are skipped without panicking
	jw.Publish(2, nil)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, bytes.ErrTooLarge
}
