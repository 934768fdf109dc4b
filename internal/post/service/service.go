package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/AlibekovAA/postboard/internal/common/clock"
	"github.com/AlibekovAA/postboard/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/postboard/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/postboard/internal/common/errors"
	"github.com/AlibekovAA/postboard/internal/common/logger"
	"github.com/AlibekovAA/postboard/internal/observability/metrics"
	"github.com/AlibekovAA/postboard/internal/post/domain"
	postrepo "github.com/AlibekovAA/postboard/internal/post/repository"
	userdomain "github.com/AlibekovAA/postboard/internal/user/domain"
)

type PostService struct {
	repo        postrepo.Repository
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewPostService(
	repo postrepo.Repository,
	idGenerator commoncrypto.IDGenerator,
	clock clock.Clock,
	log *logger.Logger,
) *PostService {
	return &PostService{
		repo:        repo,
		idGenerator: idGenerator,
		clock:       clock,
		log:         log,
	}
}

type CreateInput struct {
	Title   string
	Content string
}

type ListResult struct {
	Posts []domain.Post
	Page  int
	Limit int
	Total int
}

// Create records a post authored by the caller. The author id comes from a
// validated token, which implies a completed signup; users are never
// deleted, so no existence check is made here.
func (s *PostService) Create(ctx context.Context, authorID userdomain.ID, input CreateInput) (domain.Post, error) {
	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"author_id": string(authorID),
			"action":    "post_create_id_failed",
		}).Errorf("post create failed: id generation error: %v", err)
		return domain.Post{}, newInternalError("ID_GENERATION_FAILED", "failed to create post", err)
	}

	now := s.clock.Now()
	post := domain.Post{
		ID:        domain.ID(id),
		AuthorID:  authorID,
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"author_id": string(authorID),
			"action":    "post_create_failed",
		}).Errorf("post create failed: %v", err)
		return domain.Post{}, newInternalError("POST_CREATE_FAILED", "failed to create post", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"post_id":   string(post.ID),
		"author_id": string(authorID),
		"action":    "post_created",
	}).Info("post created")

	metrics.PostsCreatedTotal.Inc()

	return post, nil
}

func (s *PostService) Get(ctx context.Context, id domain.ID) (domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			return domain.Post{}, commonerrors.ErrPostNotFound
		}
		return domain.Post{}, newInternalError("POST_FETCH_FAILED", "failed to fetch post", err)
	}
	return post, nil
}

// List pages through posts in creation order. Out-of-range page and limit
// values are clamped, never rejected: page < 1 becomes 1, limit < 1 becomes
// the default, limit above the cap becomes the cap.
func (s *PostService) List(ctx context.Context, page, limit int) (ListResult, error) {
	page, limit = NormalizePagination(page, limit)

	result, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return ListResult{}, newInternalError("POST_LIST_FAILED", "failed to list posts", err)
	}

	metrics.PostListRequestsTotal.Inc()

	return ListResult{
		Posts: result.Posts,
		Page:  page,
		Limit: limit,
		Total: result.Total,
	}, nil
}

// Delete removes a post when the requester is its author. The repository
// performs existence, ownership and removal atomically.
func (s *PostService) Delete(ctx context.Context, id domain.ID, requesterID userdomain.ID) error {
	err := s.repo.Delete(ctx, id, requesterID)
	if err != nil {
		switch {
		case errors.Is(err, postrepo.ErrPostNotFound):
			return commonerrors.ErrPostNotFound
		case errors.Is(err, postrepo.ErrNotPostAuthor):
			s.log.WithFields(ctx, logger.Fields{
				"post_id":      string(id),
				"requester_id": string(requesterID),
				"action":       "post_delete_forbidden",
			}).Warn("post delete forbidden")
			return commonerrors.ErrNotPostAuthor
		default:
			return newInternalError("POST_DELETE_FAILED", "failed to delete post", err)
		}
	}

	s.log.WithFields(ctx, logger.Fields{
		"post_id":      string(id),
		"requester_id": string(requesterID),
		"action":       "post_deleted",
	}).Info("post deleted")

	metrics.PostsDeletedTotal.Inc()

	return nil
}

func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = constants.DefaultPage
	}
	if limit < 1 {
		limit = constants.DefaultPageLimit
	}
	if limit > constants.MaxPageLimit {
		limit = constants.MaxPageLimit
	}
	return page, limit
}

func newInternalError(code, message string, cause error) commonerrors.DomainError {
	err := commonerrors.NewDomainError(
		code,
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		message,
	)
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}
