package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Domenick1991/ticketing/internal/access"
	"github.com/Domenick1991/ticketing/internal/auth"
	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/Domenick1991/ticketing/internal/logger"
	"github.com/Domenick1991/ticketing/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (auth.Token, error)
	List(ctx context.Context, principal domain.Principal) ([]domain.User, error)
}

type TokenIssuer interface {
	Issue(user domain.User) (auth.Token, error)
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in RegisterInput) Validate() error {
	if strings.TrimSpace(in.Username) == "" {
		return domain.Invalid("username", "username is required")
	}
	if len(in.Username) > 150 {
		return domain.Invalid("username", "username is too long")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return domain.Invalid("email", "enter a valid email address")
	}
	if len(in.Password) < minPasswordLength {
		return domain.Invalid("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	return nil
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserService struct {
	repo       repository.UserRepository
	tokens     TokenIssuer
	bcryptCost int
	log        *zap.Logger
}

func NewUserService(repo repository.UserRepository, tokens TokenIssuer, bcryptCost int, log *zap.Logger) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        logger.OrNop(log),
	}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := access.Authorize(domain.Anonymous(), access.ActionCreate, access.Users()); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Invalid("username", "a user with that username already exists")
		}
		return nil, err
	}

	s.log.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login checks the credentials and issues an access token. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, input LoginInput) (auth.Token, error) {
	if input.Username == "" || input.Password == "" {
		return auth.Token{}, domain.Invalid("credentials", "username and password are required")
	}

	user, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return auth.Token{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return auth.Token{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return auth.Token{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	return s.tokens.Issue(*user)
}

func (s *UserService) List(ctx context.Context, principal domain.Principal) ([]domain.User, error) {
	if err := access.Authorize(principal, access.ActionRead, access.Users()); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

var _ UserUseCase = (*UserService)(nil)
