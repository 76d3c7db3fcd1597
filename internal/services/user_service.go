package services

import (
	"context"
	"log"
	"strings"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
	"github.com/Thooms-coder/Shibui-Planner/internal/repositories"
)

// UserInput carries raw user-management form values.
type UserInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	TelegramChatID int64  `json:"telegram_chat_id"`
}

type UserService interface {
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	CreateUser(ctx context.Context, actor models.Actor, in UserInput) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, actor models.Actor, id int64, in UserInput) (*models.User, error)

	// DeleteUser cascades: the user's feedback, then their assignments,
	// then the user row, in one transaction.
	DeleteUser(ctx context.Context, actor models.Actor, id int64) error
}

type userService struct {
	repo         repositories.UserRepository
	emailService EmailService
	authService  AuthService
}

func NewUserService(repo repositories.UserRepository, emailService EmailService, authService AuthService) UserService {
	return &userService{repo: repo, emailService: emailService, authService: authService}
}

func (s *userService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, "", err
	}
	if user == nil || !s.authService.CheckPassword(user.PasswordHash, password) {
		return nil, "", &models.AuthorizationError{Msg: "incorrect email or password"}
	}
	token, err := s.authService.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) CreateUser(ctx context.Context, actor models.Actor, in UserInput) (*models.User, error) {
	user, password, err := s.validate(ctx, in, nil)
	if err != nil {
		return nil, err
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
			// warn but do not fail creation
			log.Printf("[user][create] warning: welcome email to %s failed: %v", user.Email, err)
		}
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, actor models.Actor, id int64, in UserInput) (*models.User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guardAdminTarget(actor, existing); err != nil {
		return nil, err
	}

	user, password, err := s.validate(ctx, in, existing)
	if err != nil {
		return nil, err
	}
	user.ID = id
	// administrators never lose their role through an edit form
	if existing.Role == models.RoleAdministrator {
		user.Role = models.RoleAdministrator
	}
	if password != "" {
		hash, err := s.authService.HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	} else {
		user.PasswordHash = existing.PasswordHash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, actor models.Actor, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := guardAdminTarget(actor, existing); err != nil {
		return err
	}
	return s.repo.DeleteCascade(ctx, id)
}

// guardAdminTarget stops one administrator from modifying another.
func guardAdminTarget(actor models.Actor, target *models.User) error {
	if target.Role == models.RoleAdministrator && target.ID != actor.UserID {
		return &models.AuthorizationError{Msg: "cannot modify other administrators"}
	}
	return nil
}

func (s *userService) validate(ctx context.Context, in UserInput, existing *models.User) (*models.User, string, error) {
	verr := &models.ValidationError{}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if existing != nil {
		if name == "" {
			name = existing.Name
		}
		if email == "" {
			email = existing.Email
		}
	}
	if name == "" {
		verr.Add("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		verr.Add("a valid email is required")
	} else if existing == nil || email != existing.Email {
		other, err := s.repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, "", err
		}
		if other != nil {
			verr.Add("email is already in use")
		}
	}

	role := models.Role(in.Role)
	if in.Role == "" {
		if existing != nil {
			role = existing.Role
		} else {
			role = models.RoleRegular
		}
	} else if !role.Valid() {
		verr.Add("role must be 'Administrator' or 'Regular'")
	}

	password := in.Password
	if existing == nil && strings.TrimSpace(password) == "" {
		verr.Add("password is required")
	}

	chatID := in.TelegramChatID
	if chatID == 0 && existing != nil {
		chatID = existing.TelegramChatID
	}

	if err := verr.Err(); err != nil {
		return nil, "", err
	}
	return &models.User{Name: name, Email: email, Role: role, TelegramChatID: chatID}, password, nil
}
