package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"nakliye/internal/catalog"
	"nakliye/internal/formshape"
	"nakliye/internal/model"
	"nakliye/internal/repository"

	"github.com/google/uuid"
)

type HeroSlideRequest struct {
	SlideType string                 `json:"slide_type" binding:"required"`
	IsActive  *bool                  `json:"is_active"`
	Order     *int                   `json:"order"`
	Values    map[string]interface{} `json:"values"`
}

type HeroSlideResponse struct {
	ID        uuid.UUID              `json:"id"`
	SlideType string                 `json:"slide_type"`
	KindKnown bool                   `json:"kind_known"`
	Title     string                 `json:"title"`
	IsActive  bool                   `json:"is_active"`
	Order     int                    `json:"order"`
	Content   map[string]interface{} `json:"content"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type HeroSlideFormResponse struct {
	ID        uuid.UUID         `json:"id"`
	SlideType string            `json:"slide_type"`
	KindKnown bool              `json:"kind_known"`
	Fields    []formshape.Field `json:"fields"`
	State     formshape.State   `json:"state"`
	Cleared   []string          `json:"cleared"`
}

type HeroSlideService interface {
	ListSlides(ctx context.Context, activeOnly bool) ([]HeroSlideResponse, error)
	GetSlideForm(ctx context.Context, id string) (HeroSlideFormResponse, error)
	CreateSlide(ctx context.Context, actor Actor, req HeroSlideRequest) (HeroSlideResponse, error)
	UpdateSlide(ctx context.Context, actor Actor, id string, req HeroSlideRequest) (HeroSlideResponse, error)
	DeleteSlide(ctx context.Context, actor Actor, id string) error
}

type heroSlideService struct {
	repo      repository.HeroSlideRepository
	audit     auditWriter
	txManager repository.TransactionManager
	schema    *formshape.Schema
}

func NewHeroSlideService(repo repository.HeroSlideRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager, cat *catalog.Catalog) HeroSlideService {
	return &heroSlideService{
		repo:      repo,
		audit:     auditWriter{repo: auditRepo},
		txManager: txManager,
		schema:    cat.HeroSlideSchema(),
	}
}

// ListSlides returns the carousel. The public view skips slides whose layout is no
// longer known since they cannot be rendered.
func (s *heroSlideService) ListSlides(ctx context.Context, activeOnly bool) ([]HeroSlideResponse, error) {
	slides, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hero slides: %w", err)
	}
	res := make([]HeroSlideResponse, 0, len(slides))
	for i := range slides {
		r := s.toResponse(&slides[i])
		if activeOnly && !r.KindKnown {
			log.Printf("WARNING: hero slide %s has unknown layout %q, skipped", r.ID, r.SlideType)
			continue
		}
		res = append(res, r)
	}
	return res, nil
}

func (s *heroSlideService) GetSlideForm(ctx context.Context, id string) (HeroSlideFormResponse, error) {
	slide, err := s.find(ctx, id)
	if err != nil {
		return HeroSlideFormResponse{}, err
	}

	kind := formshape.Kind(slide.SlideType)
	known := s.schema.Known(kind)
	values := s.schema.Defaults(kind)
	if known {
		for k, v := range s.schema.Project(formshape.State{Kind: kind, Values: decodeValues(slide.Content)}) {
			values[k] = v
		}
	} else {
		log.Printf("WARNING: hero slide %s has unknown layout %q, serving shared fields only", slide.ID, slide.SlideType)
	}
	for k, v := range slideShared(slide) {
		values[k] = v
	}

	st := formshape.State{Kind: kind, Values: values}
	cleared := []string{}
	if known {
		cleared = append(cleared, staleChoices(s.schema, st, "values.")...)
	}
	fields := s.schema.FieldsFor(kind)
	if fields == nil {
		fields = []formshape.Field{}
	}
	return HeroSlideFormResponse{
		ID:        slide.ID,
		SlideType: slide.SlideType,
		KindKnown: known,
		Fields:    fields,
		State:     st,
		Cleared:   cleared,
	}, nil
}

func (s *heroSlideService) CreateSlide(ctx context.Context, actor Actor, req HeroSlideRequest) (HeroSlideResponse, error) {
	slide := &model.HeroSlide{IsActive: true}
	values := s.schema.Defaults(formshape.Kind(strings.TrimSpace(req.SlideType)))
	for k, v := range req.Values {
		values[k] = v
	}
	if err := s.apply(slide, req, values); err != nil {
		return HeroSlideResponse{}, err
	}
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, slide); err != nil {
			return fmt.Errorf("failed to create hero slide: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionCreateSlide, slide.ID.String(), slide.Title, map[string]interface{}{
			"slide_type": slide.SlideType,
		})
	})
	if err != nil {
		return HeroSlideResponse{}, err
	}
	return s.toResponse(slide), nil
}

// UpdateSlide merges req onto the stored slide. Switching the layout keeps only the
// shared values of the previous one; omitted order and active flag keep their stored
// values.
func (s *heroSlideService) UpdateSlide(ctx context.Context, actor Actor, id string, req HeroSlideRequest) (HeroSlideResponse, error) {
	slide, err := s.find(ctx, id)
	if err != nil {
		return HeroSlideResponse{}, err
	}
	kind := formshape.Kind(strings.TrimSpace(req.SlideType))
	if !s.schema.Known(kind) {
		return HeroSlideResponse{}, fmt.Errorf("%w: slide type %q", ErrUnknownKind, req.SlideType)
	}

	previous := formshape.Kind(slide.SlideType)
	stored := decodeValues(slide.Content)
	for k, v := range slideShared(slide) {
		stored[k] = v
	}
	next := s.schema.OnKindChanged(kind, formshape.State{Kind: previous, Values: stored})
	for k, v := range req.Values {
		next.Values[k] = v
	}

	if err := s.apply(slide, req, next.Values); err != nil {
		return HeroSlideResponse{}, err
	}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, slide); err != nil {
			return fmt.Errorf("failed to update hero slide: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionUpdateSlide, slide.ID.String(), slide.Title, map[string]interface{}{
			"slide_type":    slide.SlideType,
			"previous_type": string(previous),
		})
	})
	if err != nil {
		return HeroSlideResponse{}, err
	}
	return s.toResponse(slide), nil
}

func (s *heroSlideService) DeleteSlide(ctx context.Context, actor Actor, id string) error {
	slide, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, slide.ID); err != nil {
			return fmt.Errorf("failed to delete hero slide: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionDeleteSlide, slide.ID.String(), slide.Title, nil)
	})
}

func (s *heroSlideService) apply(slide *model.HeroSlide, req HeroSlideRequest, values map[string]interface{}) error {
	kind := formshape.Kind(strings.TrimSpace(req.SlideType))
	if !s.schema.Known(kind) {
		return fmt.Errorf("%w: slide type %q", ErrUnknownKind, req.SlideType)
	}
	if values == nil {
		values = map[string]interface{}{}
	}
	st := formshape.State{Kind: kind, Values: values}
	if err := s.schema.Validate(st); err != nil {
		return err
	}
	content := s.schema.Project(st)
	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to encode slide content: %w", err)
	}

	title, _ := content[catalog.KeySlideTitle].(string)
	slide.SlideType = string(kind)
	slide.Title = strings.TrimSpace(title)
	if req.Order != nil {
		slide.SortOrder = *req.Order
	} else if order, ok := intValue(values[catalog.KeySlideOrder]); ok {
		slide.SortOrder = order
	}
	if req.IsActive != nil {
		slide.IsActive = *req.IsActive
	}
	slide.Content = string(raw)
	return nil
}

func (s *heroSlideService) find(ctx context.Context, id string) (*model.HeroSlide, error) {
	sid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	slide, err := s.repo.FindByID(ctx, sid)
	if err != nil {
		return nil, repoErr(err)
	}
	return slide, nil
}

func (s *heroSlideService) toResponse(slide *model.HeroSlide) HeroSlideResponse {
	kind := formshape.Kind(slide.SlideType)
	known := s.schema.Known(kind)
	content := map[string]interface{}{}
	if known {
		content = s.schema.Project(formshape.State{Kind: kind, Values: decodeValues(slide.Content)})
	}
	return HeroSlideResponse{
		ID:        slide.ID,
		SlideType: slide.SlideType,
		KindKnown: known,
		Title:     slide.Title,
		IsActive:  slide.IsActive,
		Order:     slide.SortOrder,
		Content:   content,
		CreatedAt: slide.CreatedAt,
		UpdatedAt: slide.UpdatedAt,
	}
}

func slideShared(slide *model.HeroSlide) map[string]interface{} {
	return map[string]interface{}{
		catalog.KeySlideTitle:  slide.Title,
		catalog.KeySlideActive: slide.IsActive,
		catalog.KeySlideOrder:  slide.SortOrder,
	}
}

// intValue reads an integral number from a decoded payload value.
func intValue(v interface{}) (int, bool) {
	d, ok := formshape.ToDecimal(v)
	if !ok || !d.IsInteger() {
		return 0, false
	}
	return int(d.IntPart()), true
}
