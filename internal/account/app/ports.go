package app

import (
	"context"

	"DiceWars/internal/account/domain"
)

type UserRepo interface {
	GetUserByUserName(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	Save(ctx context.Context, u domain.User) error
}

// PwdEncrypter 把明文密码和安全码折算成落库密文。
type PwdEncrypter func(pwd, passcode string) string

// RandSeq 生成指定长度的随机串，用作每用户安全码。
type RandSeq func(n int) string

// TokenIssuer 给 uid 签发登录凭证。
type TokenIssuer func(uid string) (string, error)
