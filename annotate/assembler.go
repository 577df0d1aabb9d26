package annotate

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/visiondatakit/go-skelannot"
	"github.com/visiondatakit/go-skelannot/annotate/result"
)

// Setup time configuration errors.  Frame processing never returns errors,
// per entity failures degrade that entity to absent/ineligible instead
var (
	ErrNoTemplate    = errors.New("annotate: no active keypoint template")
	ErrNoLabelConfig = errors.New("annotate: no label configuration")
	ErrNoRegistry    = errors.New("annotate: no entity registry")
	ErrNoCamera      = errors.New("annotate: no camera")
)

// Reporter receives the frame annotation output.  Implementations are
// expected to be fire and forget, the assembler does not wait on delivery
type Reporter interface {
	// Register is called once at setup with the template schema
	Register(reg result.Registration)
	// Publish is called once per frame with the eligible entity records
	Publish(frame int64, records []result.Record)
}

// Visualizer receives the same per frame record list as the reporter for
// debug drawing.  It has no influence on annotation correctness
type Visualizer interface {
	Draw(frame int64, records []result.Record)
}

// Config carries the collaborators and declarative data the assembler is
// built from.  Template, Labels, Registry, and Camera are required
type Config struct {
	Template *skelannot.KeypointTemplate
	Labels   *skelannot.LabelConfig
	Registry skelannot.Registry
	Camera   skelannot.Camera
	// Poses is the optional pose classification table
	Poses skelannot.PoseTable
	// Reporter receives registration and per frame records
	Reporter Reporter
	// Visualizer optionally receives per frame records for debug drawing
	Visualizer Visualizer
	// EvictAfter is the number of frames an entity may go unobserved
	// before its cache entry is dropped.  Zero disables eviction
	EvictAfter int64
}

// Assembler runs the per frame annotation pass, one synchronous
// resolve/project/classify sweep over all labeled entities per rendered
// frame
type Assembler struct {
	cfg        Config
	sessionID  string
	resolver   *Resolver
	projector  *Projector
	classifier *Classifier
	// frame is the reusable per frame output buffer
	frame []result.Record

	mu   sync.Mutex
	subs []chan []result.Record
}

// New validates the configuration, sends the one time template
// registration to the reporter, and returns an assembler ready for frame
// processing
func New(cfg Config) (*Assembler, error) {

	if cfg.Template == nil {
		return nil, ErrNoTemplate
	}

	if err := cfg.Template.Validate(); err != nil {
		return nil, err
	}

	if cfg.Labels == nil {
		return nil, ErrNoLabelConfig
	}

	if cfg.Registry == nil {
		return nil, ErrNoRegistry
	}

	if cfg.Camera == nil {
		return nil, ErrNoCamera
	}

	a := &Assembler{
		cfg:        cfg,
		sessionID:  uuid.NewString(),
		resolver:   NewResolver(cfg.Template, cfg.Labels),
		projector:  NewProjector(cfg.Template, cfg.Camera),
		classifier: NewClassifier(cfg.Poses),
	}

	if cfg.Reporter != nil {
		cfg.Reporter.Register(a.Registration())
	}

	return a, nil
}

// Registration builds the template schema payload sent to reporting
// collaborators at startup
func (a *Assembler) Registration() result.Registration {

	tpl := a.cfg.Template

	reg := result.Registration{
		SessionID:    a.sessionID,
		TemplateID:   tpl.ID,
		TemplateName: tpl.Name,
	}

	for i, pt := range tpl.Points {
		reg.KeyPoints = append(reg.KeyPoints, result.RegistrationKeyPoint{
			Label: pt.Label,
			Index: i,
		})
	}

	for _, edge := range tpl.Skeleton {
		reg.Skeleton = append(reg.Skeleton, result.RegistrationEdge{
			Joint1: edge.A,
			Joint2: edge.B,
		})
	}

	return reg
}

// SessionID returns the unique identifier assigned to this annotation
// session
func (a *Assembler) SessionID() string {
	return a.sessionID
}

// Resolver exposes the entity cache store, mainly for eviction decisions
// and instrumentation
func (a *Assembler) Resolver() *Resolver {
	return a.resolver
}

// OnBeginRendering runs one full annotation pass for the given frame and
// returns the published records.  It is intended to be hooked to the
// rendering subsystem's begin frame event so exactly one pass runs per
// rendered frame.  A failure resolving one entity never aborts the frame
// for other entities
func (a *Assembler) OnBeginRendering(frame int64) []result.Record {

	a.frame = a.frame[:0]
	a.resolver.NextGeneration()

	for _, le := range a.cfg.Registry.LabeledEntities(frame) {

		cache := a.resolver.Resolve(le.InstanceID, le.Entity)

		if !cache.Eligible() {
			// ineligible entities produce no record at all
			continue
		}

		a.projector.Project(cache)
		cache.record.Pose = a.classifier.Classify(cache)

		a.frame = append(a.frame, *cache.record)
	}

	if a.cfg.EvictAfter > 0 {
		a.resolver.EvictUnseen(a.cfg.EvictAfter)
	}

	// hand out a snapshot, the per entity record buffers are reused next
	// frame
	out := make([]result.Record, len(a.frame))

	for i := range a.frame {
		out[i] = a.frame[i].Clone()
	}

	if a.cfg.Reporter != nil {
		a.cfg.Reporter.Publish(frame, out)
	}

	if a.cfg.Visualizer != nil {
		a.cfg.Visualizer.Draw(frame, out)
	}

	a.notify(out)

	return out
}

// Subscribe returns a channel receiving each frame's record list.  The
// channel holds only the latest frame, a subscriber that cannot keep up
// sees older frames replaced rather than blocking the annotation pass
func (a *Assembler) Subscribe() <-chan []result.Record {

	a.mu.Lock()
	defer a.mu.Unlock()

	ch := make(chan []result.Record, 1)
	a.subs = append(a.subs, ch)

	return ch
}

// notify delivers the frame snapshot to all subscribers without blocking
func (a *Assembler) notify(records []result.Record) {

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, ch := range a.subs {

		select {
		case ch <- records:
		default:
			// drop the stale frame and replace with the latest
			select {
			case <-ch:
			default:
			}

			select {
			case ch <- records:
			default:
			}
		}
	}
}
