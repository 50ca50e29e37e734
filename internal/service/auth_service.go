package service

import (
	"context"
	"strings"
	"time"

	"talentbridge_backend/internal/config"
	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/repository"
	"talentbridge_backend/internal/util"
	"talentbridge_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=6"`
	Type     model.UserType `json:"type" binding:"required"`
}

type AuthService struct {
	Credentials   *repository.CredentialRepository
	Learners      *LearnerService
	Sessions      *repository.QuizSessionRepository
	Notifications *NotificationService
	Cfg           *config.Config
}

func NewAuthService(
	credentials *repository.CredentialRepository,
	learners *LearnerService,
	sessions *repository.QuizSessionRepository,
	notifications *NotificationService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		Credentials:   credentials,
		Learners:      learners,
		Sessions:      sessions,
		Notifications: notifications,
		Cfg:           cfg,
	}
}

// Register creates the account with every onboarding flag false.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (model.Learner, error) {
	if !req.Type.Valid() {
		return model.Learner{}, util.ErrInvalidUserType
	}

	_, found, err := s.Credentials.FindByEmail(ctx, req.Email)
	if err != nil {
		return model.Learner{}, err
	}
	if found {
		return model.Learner{}, util.ErrEmailRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.Learner{}, err
	}

	learner := model.NewAccount(model.GenerateUUID(), req.Type, strings.TrimSpace(req.Name),
		repository.NormalizeEmail(req.Email), time.Now().UTC())

	if err := s.Credentials.Create(ctx, model.Credential{
		LearnerID:    learner.ID,
		Email:        learner.Email,
		PasswordHash: string(hashedPassword),
	}); err != nil {
		return model.Learner{}, err
	}
	s.Learners.Create(ctx, learner)

	logger.Log.Info("Account registered", zap.String("learner_id", learner.ID), zap.String("type", string(learner.Type)))
	return learner, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, model.Learner, error) {
	cred, found, err := s.Credentials.FindByEmail(ctx, email)
	if err != nil {
		return "", model.Learner{}, err
	}
	if !found {
		return "", model.Learner{}, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", model.Learner{}, util.ErrInvalidCredentials
	}

	learner, err := s.Learners.Get(ctx, cred.LearnerID)
	if err != nil {
		return "", model.Learner{}, err
	}

	token, err := util.GenerateJWT(learner, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", model.Learner{}, err
	}
	return token, learner, nil
}

// DeleteAccount removes everything stored for the account.
func (s *AuthService) DeleteAccount(ctx context.Context, learnerID string) error {
	learner, err := s.Learners.Get(ctx, learnerID)
	if err != nil {
		return err
	}

	s.Credentials.Delete(ctx, learner.Email)
	s.Sessions.Delete(ctx, learnerID)
	s.Notifications.Clear(ctx, learnerID)
	s.Learners.Forget(ctx, learnerID)

	logger.Log.Info("Account deleted", zap.String("learner_id", learnerID))
	return nil
}
