package ask

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gamdel/core/internal/models"
	"github.com/gamdel/core/internal/modules/answer"
	"github.com/gamdel/core/internal/modules/classify"
	"github.com/gamdel/core/internal/modules/docmeta"
	"github.com/gamdel/core/internal/modules/documents"
	"github.com/gamdel/core/internal/modules/guard"
	"github.com/gamdel/core/internal/modules/resolver"
	"github.com/gamdel/core/internal/pkg/redis"
)

// ErrEmptyDocument is returned when the resolved document has no text.
var ErrEmptyDocument = errors.New("document has no content")

// Recorder is the slice of the conversation log the ask flow needs.
type Recorder interface {
	Append(tenant, question, answer string, sources []string) error
	Recent(tenant string, limit int) ([]models.ConversationModel, error)
	CountQuestions(tenant string) (int64, error)
}

// answerCacheTTL bounds how long a generated answer may be served without
// re-asking the model. Document churn makes longer TTLs risky.
const answerCacheTTL = 10 * time.Minute

type Service struct {
	docs         *documents.Service
	conversation Recorder
	resolver     *resolver.Resolver
	answerer     answer.Answerer
	cache        *redis.Client
	contextLimit int
	log          *zap.Logger
}

// NewService wires the ask flow. cache may be nil to disable answer caching.
func NewService(
	docs *documents.Service,
	conv Recorder,
	res *resolver.Resolver,
	ans answer.Answerer,
	cache *redis.Client,
	contextLimit int,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		docs:         docs,
		conversation: conv,
		resolver:     res,
		answerer:     ans,
		cache:        cache,
		contextLimit: contextLimit,
		log:          log,
	}
}

// Ask routes a question to the right path: synthesized table, system
// info or a generative answer grounded in exactly one document.
func (s *Service) Ask(ctx context.Context, tenant, question string) (Result, error) {
	if err := s.docs.EnsureLoaded(ctx, tenant); err != nil {
		s.log.Warn("lazy load failed", zap.String("tenant", tenant), zap.Error(err))
	}

	switch classify.Classify(question) {
	case classify.IntentTable:
		text := renderTable(s.docs.Store().List(tenant))
		s.record(ctx, tenant, question, text, []string{models.SourceSystem})
		return Result{Answer: text, Sources: []string{models.SourceSystem}}, nil

	case classify.IntentMeta:
		questions, err := s.conversation.CountQuestions(tenant)
		if err != nil {
			s.log.Warn("question count failed", zap.String("tenant", tenant), zap.Error(err))
		}
		lastQuestion := ""
		if recent, err := s.conversation.Recent(tenant, 1); err == nil && len(recent) > 0 {
			lastQuestion = recent[0].Question
		}
		text := renderSystemInfo(s.docs.Store().List(tenant), questions, lastQuestion)
		s.record(ctx, tenant, question, text, []string{models.SourceSystem})
		return Result{Answer: text, Sources: []string{models.SourceSystem}}, nil
	}

	return s.askContent(ctx, tenant, question)
}

func (s *Service) askContent(ctx context.Context, tenant, question string) (Result, error) {
	names, docs, index := s.docs.Store().Snapshot(tenant)
	if len(names) == 0 {
		return Result{}, resolver.ErrNoDocuments
	}

	docName, err := s.resolver.Resolve(question, names, index)
	if err != nil {
		return Result{}, err
	}

	docText := docs[docName]
	if docText == "" {
		return Result{}, fmt.Errorf("%w: %s", ErrEmptyDocument, docName)
	}

	cacheKey := answerCacheKey(tenant, docName, question)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			s.record(ctx, tenant, question, cached, []string{docName})
			return Result{Answer: cached, Sources: []string{docmeta.Citation(docName)}}, nil
		}
	}

	contextText := docText
	if s.contextLimit > 0 && len(contextText) > s.contextLimit {
		contextText = truncateAtRune(contextText, s.contextLimit) + "..."
	}

	raw, err := s.answerer.Answer(ctx, docName, contextText, question)
	if err != nil {
		return Result{}, err
	}

	final, flagged := guard.Sanitize(raw, docName, docText)
	if flagged {
		s.log.Info("answer replaced by refusal",
			zap.String("tenant", tenant),
			zap.String("document", docName))
	}

	if s.cache != nil && !flagged {
		if err := s.cache.Set(ctx, cacheKey, final, answerCacheTTL); err != nil {
			s.log.Warn("answer cache write failed", zap.Error(err))
		}
	}

	s.record(ctx, tenant, question, final, []string{docName})

	return Result{Answer: final, Sources: []string{docmeta.Citation(docName)}}, nil
}

func answerCacheKey(tenant, docName, question string) string {
	sum := sha256.Sum256([]byte(docName + "\x00" + strings.ToLower(strings.TrimSpace(question))))
	return fmt.Sprintf("gamdel:answer:%s:%x", tenant, sum[:16])
}

// record appends to the conversation log unless the request was
// cancelled. A log write failure never fails the answer.
func (s *Service) record(ctx context.Context, tenant, question, answerText string, sources []string) {
	if ctx.Err() != nil {
		return
	}
	if err := s.conversation.Append(tenant, question, answerText, sources); err != nil {
		s.log.Warn("conversation append failed", zap.String("tenant", tenant), zap.Error(err))
	}
}
