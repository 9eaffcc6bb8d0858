// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"secondchance_backend/internal/feature/auth/domain/entity"
)

const (
	// minNameLength はプロフィール更新時の氏名の最低文字数です。
	minNameLength = 2
	// minPasswordLength はプロフィール更新時のパスワードの最低文字数です。
	minPasswordLength = 6
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update は既存ユーザーの変更を永続化します。
	Update(ctx context.Context, user *entity.User) error
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーIDの署名済みJWTトークンを生成します。
	GenerateToken(userID uint) (string, error)
}

// ProfileUpdate carries the mutable profile fields. Nil means the field was
// not supplied and keeps its stored value.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Password  *string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、トークンを発行します。
// 重複メールの事前チェックは分かりやすいエラーを返すためのもので、
// 競合時の最終防衛はデータベースのユニーク制約が担います。
func (u *authUsecase) Register(ctx context.Context, email, password, firstName, lastName string) (*entity.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	// 事前チェック（フレンドリーなエラーメッセージ用）
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, tokenErr := u.jwtGenerator.GenerateToken(user.ID)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return user, token, nil
}

// UpdateProfile merges the supplied fields into the user identified by email
// and returns a fresh token. Field validation runs before the email and
// existence checks; that ordering is part of the API contract.
func (u *authUsecase) UpdateProfile(ctx context.Context, email string, upd ProfileUpdate) (string, error) {
	if err := validateProfileUpdate(upd); err != nil {
		return "", err
	}

	if email == "" {
		return "", fmt.Errorf("%w: email header is required", ErrValidation)
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	// IDは不変なので、更新前に取得した値でトークンを発行して問題ない
	userID := user.ID

	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := u.users.Update(ctx, user); err != nil {
		return "", err
	}

	token, err := u.jwtGenerator.GenerateToken(userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}

// Profile は認証済みユーザーIDに対応するユーザーを取得します。
func (u *authUsecase) Profile(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// validateProfileUpdate checks minimum lengths on the supplied fields only.
func validateProfileUpdate(upd ProfileUpdate) error {
	if upd.FirstName != nil && len(*upd.FirstName) < minNameLength {
		return fmt.Errorf("%w: firstName must be at least %d characters", ErrValidation, minNameLength)
	}
	if upd.LastName != nil && len(*upd.LastName) < minNameLength {
		return fmt.Errorf("%w: lastName must be at least %d characters", ErrValidation, minNameLength)
	}
	if upd.Password != nil && len(*upd.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	return nil
}
