package utils

import (
  "context"
  "fmt"
  "golang.org/x/crypto/bcrypt"
  "github.com/yungbote/wellspring-backend/internal/apperr"
  "github.com/yungbote/wellspring-backend/internal/logger"
  "github.com/yungbote/wellspring-backend/internal/normalization"
  "github.com/yungbote/wellspring-backend/internal/repos"
  "github.com/yungbote/wellspring-backend/internal/types"
)

func InputValidation(ctx context.Context, ffor string, userRepo repos.UserRepo, log *logger.Logger, user *types.User, email, password string) error {
  validatedFor := normalization.ParseInputString(ffor)
  if validatedFor == "" {
    return fmt.Errorf("%w: validation target must be login or registration", apperr.ErrInvalidArgument)
  }
  switch validatedFor {
  case "registration":
    if err := handleRegisterInputValidation(ctx, userRepo, log, user); err != nil {
      return err
    }
  case "login":
    if err := handleLoginInputValidation(ctx, log, email, password); err != nil {
      return err
    }
  }
  return nil
}

func handleRegisterInputValidation(ctx context.Context, userRepo repos.UserRepo, log *logger.Logger, user *types.User) error {
  if user == nil {
    return fmt.Errorf("%w: no user given, cannot proceed with registration", apperr.ErrInvalidArgument)
  }
  if user.Email == "" {
    return fmt.Errorf("%w: an email is required to register", apperr.ErrInvalidArgument)
  }
  emailExists, err := userRepo.EmailExists(ctx, nil, user.Email)
  if err != nil {
    return fmt.Errorf("failed to check user email: %w", err)
  }
  if emailExists {
    return fmt.Errorf("%w: email is already in use", apperr.ErrConflict)
  }
  if user.Password == "" {
    return fmt.Errorf("%w: a password is required to register", apperr.ErrInvalidArgument)
  }
  if user.FirstName == "" {
    return fmt.Errorf("%w: a first name is required to register", apperr.ErrInvalidArgument)
  }
  if user.LastName == "" {
    return fmt.Errorf("%w: a last name is required to register", apperr.ErrInvalidArgument)
  }
  return nil
}

func handleLoginInputValidation(ctx context.Context, log *logger.Logger, email, password string) error {
  if email == "" {
    return fmt.Errorf("%w: email is required to login", apperr.ErrInvalidArgument)
  }
  if password == "" {
    return fmt.Errorf("%w: password is required to login", apperr.ErrInvalidArgument)
  }
  return nil
}

func HashPassword(ctx context.Context, log *logger.Logger, user *types.User) error {
  hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    return fmt.Errorf("failed to hash password: %w", err)
  }
  user.Password = string(hashedPassword)
  return nil
}

func NormalizeUserFields(ctx context.Context, user *types.User) {
  user.Email = normalization.ParseInputString(user.Email)
  user.Password = normalization.TrimInput(user.Password)
  user.FirstName = normalization.TrimInput(user.FirstName)
  user.LastName = normalization.TrimInput(user.LastName)
}
