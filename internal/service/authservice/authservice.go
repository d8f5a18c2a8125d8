package authservice

import (
	"context"
	"time"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/pkg/apperr"
	"github.com/nbataa/agentmart/pkg/auth"
	"go.uber.org/zap"
)

// initialCardGrant is the research-card credit every new account starts with.
const initialCardGrant = 1

type Repo interface {
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type Ledger interface {
	GrantInitial(ctx context.Context, accountID int, amount int64) error
}

type Service struct {
	userRepo    Repo
	ledger      Ledger
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
}

func New(repo Repo, ledger Ledger, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		userRepo:    repo,
		ledger:      ledger,
		hashService: hashService,
		jwtService:  jwtService,
	}
}

var (
	ErrPhoneTaken         = apperr.New(apperr.CodeConflict, "phone number already registered")
	ErrInvalidCredentials = apperr.New(apperr.CodeUnauthorized, "invalid credentials")
	ErrUnknownRole        = apperr.New(apperr.CodeValidation, "unknown role")
)

func (s *Service) Register(ctx context.Context, phone, name, password, role string) (*domain.User, error) {
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAgent && role != domain.RoleAdmin {
		return nil, ErrUnknownRole
	}

	existingUser, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("phone already registered", zap.String("phone", phone))
		return nil, ErrPhoneTaken
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}

	newUser, err := s.userRepo.Create(ctx, &domain.User{
		Phone:        phone,
		Name:         name,
		PasswordHash: hashedPassword,
		Role:         role,
	})
	if err != nil {
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, err
	}

	if err := s.ledger.GrantInitial(ctx, newUser.ID, initialCardGrant); err != nil {
		zap.L().Error("can't grant initial cards: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.String("phone", phone), zap.String("role", role))
	return newUser, nil
}

func (s *Service) Authenticate(ctx context.Context, phone, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil || user == nil {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Warn("password mismatch", zap.String("phone", phone))
		return nil, ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.String("phone", phone))
	return user, nil
}

func (s *Service) GenerateToken(userID int, role string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)

	token, err := s.jwtService.GenerateJWT(userID, role, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}
