package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	MsgQuestionFailed = "Failed to generate a question. Please try again."
	MsgAnswerFailed   = "Failed to get the AI response or verdict. Please try again."
	MsgAnswerRequired = "Please enter your answer before submitting."
	MsgAnswerTooLong  = "Your answer is too long. Please shorten it and try again."

	MaxAnswerLength = 4000
)

var (
	// ErrBusy rejects a trigger while another request chain is in flight.
	ErrBusy = errors.New("session: request already in progress")
	// ErrInvalidTransition rejects a trigger that the current state does not accept.
	ErrInvalidTransition = errors.New("session: action not allowed in current state")
)

// Agent issues the three prompts of a test.
type Agent interface {
	Question(ctx context.Context) (string, error)
	Answer(ctx context.Context, question string) (string, error)
	Judge(ctx context.Context, question, humanAnswer, aiAnswer string) (string, error)
}

// Actions is the callback set a renderer drives.
type Actions interface {
	GenerateQuestion(ctx context.Context) (Session, error)
	SubmitAnswer(ctx context.Context, answer string) (Session, error)
	StartNewTest() (Session, error)
	Snapshot() Session
}

type answerSubmission struct {
	Answer string `validate:"required,max=4000"`
}

// Controller owns the one Session and drives it through
// initial -> answering -> complete -> initial.
//
// Only one request chain runs at a time; Session.Processing is the guard.
// Generation failures never escape: they become Session.Error. The returned
// error is reserved for rejected triggers (ErrBusy, ErrInvalidTransition),
// which leave the Session untouched.
type Controller struct {
	agent    Agent
	validate *validator.Validate
	logger   zerolog.Logger

	mu     sync.Mutex
	sess   Session
	testID string
}

func NewController(agent Agent, validate *validator.Validate, logger zerolog.Logger) (*Controller, error) {
	if agent == nil {
		return nil, errors.New("agent is required")
	}
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return &Controller{
		agent:    agent,
		validate: validate,
		logger:   logger.With().Str("component", "session_controller").Logger(),
		testID:   uuid.NewString(),
	}, nil
}

// Snapshot returns a copy of the current Session.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// Document returns the result document once the test is complete.
func (c *Controller) Document() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess.State != StateComplete {
		return "", false
	}
	return FormatDocument(c.sess), true
}

// GenerateQuestion asks for a new question. Initial only.
func (c *Controller) GenerateQuestion(ctx context.Context) (snap Session, err error) {
	c.mu.Lock()
	if err := c.acceptLocked(StateInitial); err != nil {
		snap = c.sess
		c.mu.Unlock()
		return snap, err
	}
	c.startLocked()
	logger := c.logger.With().Str("test_id", c.testID).Logger()
	c.mu.Unlock()

	apply := fail(MsgQuestionFailed)
	defer func() { snap = c.settle(apply) }()

	question, genErr := c.agent.Question(ctx)
	if genErr != nil {
		logger.Warn().Err(genErr).Msg("question generation failed")
		return
	}
	apply = func(s *Session) {
		s.Question = question
		s.State = StateAnswering
	}
	logger.Info().Msg("question generated")
	return
}

// SubmitAnswer records the human answer, then fetches the AI answer and the
// verdict as one step. Answering only. If either call fails the session
// stays in answering and nothing from the first call is kept.
func (c *Controller) SubmitAnswer(ctx context.Context, answer string) (snap Session, err error) {
	answer = strings.TrimSpace(answer)

	c.mu.Lock()
	if err := c.acceptLocked(StateAnswering); err != nil {
		snap = c.sess
		c.mu.Unlock()
		return snap, err
	}
	if msg := c.validateAnswer(answer); msg != "" {
		c.sess.Error = msg
		snap = c.sess
		c.mu.Unlock()
		return snap, nil
	}
	c.startLocked()
	c.sess.HumanAnswer = answer
	question := c.sess.Question
	logger := c.logger.With().Str("test_id", c.testID).Logger()
	c.mu.Unlock()

	apply := fail(MsgAnswerFailed)
	defer func() { snap = c.settle(apply) }()

	aiAnswer, genErr := c.agent.Answer(ctx, question)
	if genErr != nil {
		logger.Warn().Err(genErr).Msg("ai answer generation failed")
		return
	}
	verdict, genErr := c.agent.Judge(ctx, question, answer, aiAnswer)
	if genErr != nil {
		logger.Warn().Err(genErr).Msg("verdict generation failed")
		return
	}
	apply = func(s *Session) {
		s.AIAnswer = aiAnswer
		s.Verdict = verdict
		s.State = StateComplete
	}
	logger.Info().Msg("test complete")
	return
}

// StartNewTest discards the finished test. Complete only.
func (c *Controller) StartNewTest() (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.acceptLocked(StateComplete); err != nil {
		return c.sess, err
	}
	c.sess = Session{}
	c.testID = uuid.NewString()
	c.logger.Info().Str("test_id", c.testID).Msg("new test started")
	return c.sess, nil
}

func (c *Controller) acceptLocked(from State) error {
	if c.sess.Processing {
		return ErrBusy
	}
	if c.sess.State != from {
		return ErrInvalidTransition
	}
	return nil
}

func (c *Controller) startLocked() {
	c.sess.Processing = true
	c.sess.Error = ""
}

// settle clears Processing and applies the outcome in one step. Callers run
// it from a defer so the flag is released even if a call panics.
func (c *Controller) settle(apply func(*Session)) Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sess.Processing = false
	apply(&c.sess)
	return c.sess
}

func (c *Controller) validateAnswer(answer string) string {
	err := c.validate.Struct(answerSubmission{Answer: answer})
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
		return MsgAnswerTooLong
	}
	return MsgAnswerRequired
}

func fail(msg string) func(*Session) {
	return func(s *Session) {
		s.Error = msg
	}
}
