package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yesoreyeram/transect/pkg/action"
	"github.com/yesoreyeram/transect/pkg/observer"
	"github.com/yesoreyeram/transect/pkg/passage"
	"github.com/yesoreyeram/transect/pkg/pstate"
	"github.com/yesoreyeram/transect/pkg/tagger"
	"github.com/yesoreyeram/transect/pkg/telemetry"
)

// actionDTO is the wire shape of a single recorded action. Kind is the
// mnemonic produced by action.Kind.String() ("SHIFT", "NODE", ...); Tag,
// Distance and OrigNodeID are only meaningful for the kinds that use them.
type actionDTO struct {
	Kind       string  `json:"kind"`
	Tag        string  `json:"tag,omitempty"`
	Distance   int     `json:"distance,omitempty"`
	OrigNodeID *string `json:"orig_node_id,omitempty"`
}

var actionKindByName = map[string]action.Kind{
	"SHIFT":        action.Shift,
	"REDUCE":       action.Reduce,
	"NODE":         action.Node,
	"IMPLICIT":     action.Implicit,
	"LEFT_EDGE":    action.LeftEdge,
	"RIGHT_EDGE":   action.RightEdge,
	"LEFT_REMOTE":  action.LeftRemote,
	"RIGHT_REMOTE": action.RightRemote,
	"SWAP":         action.Swap,
	"FINISH":       action.Finish,
}

func (d actionDTO) toAction() (action.Action, error) {
	kind, ok := actionKindByName[d.Kind]
	if !ok {
		return action.Action{}, fmt.Errorf("%w: %q", ErrUnknownActionKind, d.Kind)
	}
	a := action.Action{Kind: kind, Tag: action.EdgeTag(d.Tag), Distance: d.Distance, OrigNodeID: d.OrigNodeID}
	return a, nil
}

// parseRequest is the body of POST /api/v1/parse: a paragraph of tokens and
// the action trace to replay against the resulting initial state. The live
// classifier that would normally propose this trace is out of scope; the
// caller is expected to already know which actions to apply (e.g. replaying
// an oracle-derived trace recorded offline).
type parseRequest struct {
	PassageID  string      `json:"passage_id,omitempty"`
	Paragraphs [][]string  `json:"paragraphs"`
	Actions    []actionDTO `json:"actions"`
}

// handleParse parses a tokens + action-trace payload into a passage.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestBodySize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest, err)
		return
	}

	var req parseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeErrorResponse(w, "Failed to decode request body", http.StatusBadRequest, err)
		return
	}

	actions := make([]action.Action, len(req.Actions))
	for i, dto := range req.Actions {
		a, err := dto.toAction()
		if err != nil {
			s.writeErrorResponse(w, "Invalid action in trace", http.StatusBadRequest, err)
			return
		}
		actions[i] = a
	}

	rules, err := tagger.NewRuleBasedTagger(tagger.DefaultRules(), "Word")
	if err != nil {
		s.writeErrorResponse(w, "Failed to build tagger", http.StatusInternalServerError, err)
		return
	}

	mgr := observer.NewManager()
	mgr.Register(observer.NewConsoleObserverWithLogger(observer.NewDefaultLogger()))
	mgr.Register(telemetry.NewTelemetryObserver(s.telemetryProvider))

	startTime := time.Now()
	passageID := req.PassageID
	st := pstate.New(req.Paragraphs, passageID, s.parseOptions, rules.Tag)

	mgr.Notify(r.Context(), observer.Event{
		Type:      observer.EventParseStart,
		Status:    observer.StatusStarted,
		Timestamp: startTime,
		PassageID: st.PassageID,
	})

	for i, a := range actions {
		actionStart := time.Now()
		if err := st.AssertValid(a); err != nil {
			mgr.Notify(r.Context(), observer.Event{
				Type:        observer.EventActionRejected,
				Status:      observer.StatusFailure,
				Timestamp:   time.Now(),
				PassageID:   st.PassageID,
				ActionIndex: i,
				ActionKind:  a.Kind,
				Error:       err,
			})
			s.writeErrorResponse(w, fmt.Sprintf("action %d (%s) rejected", i, a), http.StatusUnprocessableEntity, err)
			return
		}
		if err := st.Transition(a); err != nil {
			mgr.Notify(r.Context(), observer.Event{
				Type:        observer.EventActionRejected,
				Status:      observer.StatusFailure,
				Timestamp:   time.Now(),
				PassageID:   st.PassageID,
				ActionIndex: i,
				ActionKind:  a.Kind,
				Error:       err,
			})
			s.writeErrorResponse(w, fmt.Sprintf("action %d (%s) failed", i, a), http.StatusUnprocessableEntity, err)
			return
		}
		mgr.Notify(r.Context(), observer.Event{
			Type:        observer.EventActionApplied,
			Status:      observer.StatusSuccess,
			Timestamp:   time.Now(),
			StartTime:   actionStart,
			PassageID:   st.PassageID,
			ActionIndex: i,
			ActionKind:  a.Kind,
		})
	}

	builder := passage.NewBuilder(s.parseOptions)
	builder.Warn = func(err error) {
		mgr.Notify(r.Context(), observer.Event{
			Type:      observer.EventWarning,
			Status:    observer.StatusCompleted,
			Timestamp: time.Now(),
			PassageID: st.PassageID,
			Error:     err,
		})
	}

	p, err := builder.Create(st)
	mgr.Notify(r.Context(), observer.Event{
		Type:        observer.EventParseEnd,
		Status:      statusFor(err),
		Timestamp:   time.Now(),
		PassageID:   st.PassageID,
		ElapsedTime: time.Since(startTime),
		Error:       err,
	})
	if err != nil {
		s.writeErrorResponse(w, "Failed to build passage", http.StatusUnprocessableEntity, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, p)
}

func statusFor(err error) observer.ExecutionStatus {
	if err != nil {
		return observer.StatusFailure
	}
	return observer.StatusSuccess
}
