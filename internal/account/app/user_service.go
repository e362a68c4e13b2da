package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"DiceWars/internal/account/domain"
	"DiceWars/internal/account/dto"
)

type UserService struct {
	userRepo     UserRepo
	pwdEncrypter PwdEncrypter
	randSeq      RandSeq
	issueToken   TokenIssuer
}

func NewUserService(userRepo UserRepo, pwdEncrypter PwdEncrypter, randSeq RandSeq, issueToken TokenIssuer) *UserService {
	return &UserService{
		userRepo:     userRepo,
		pwdEncrypter: pwdEncrypter,
		randSeq:      randSeq,
		issueToken:   issueToken,
	}
}

// Register 注册新账号。密码用每用户随机安全码加盐后落库。
func (s *UserService) Register(ctx context.Context, req dto.RegisterReq) (*dto.UserResp, error) {
	existing, err := s.userRepo.GetUserByUserName(ctx, req.Username)
	if err != nil && errors.Is(err, domain.ErrSystemUnavailable) {
		return nil, ErrUnavailable.WithCause(err)
	}
	if existing != nil {
		return nil, ErrUserExist.WithData("username", req.Username)
	}

	passcode := s.randSeq(6)
	user := domain.User{
		ID:       uuid.NewString(),
		Username: req.Username,
		Email:    req.Email,
		Passcode: passcode,
		Passwd:   s.pwdEncrypter(req.Password, passcode),
	}
	if err = s.userRepo.Save(ctx, user); err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}

	return &dto.UserResp{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

// Login 校验凭证并签发令牌。
// "用户不存在"和"密码错误"对外折叠成同一个业务错误，不泄露账号存在性。
func (s *UserService) Login(ctx context.Context, req dto.LoginReq) (*dto.LoginResp, error) {
	user, err := s.userRepo.GetUserByUserName(ctx, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return nil, ErrInvalidCredentials.WithData("reason", "用户不存在")
		default:
			return nil, ErrUnavailable.WithCause(err)
		}
	}
	if !user.CheckPassword(req.Password, s.pwdEncrypter) {
		return nil, ErrInvalidCredentials.WithData("reason", "密码错误")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, ErrInternalServer.WithData("uid", user.ID).WithCause(err)
	}

	return &dto.LoginResp{
		User:  dto.UserResp{ID: user.ID, Username: user.Username, Email: user.Email},
		Token: token,
	}, nil
}

// Profile 按 uid 取账号信息。
func (s *UserService) Profile(ctx context.Context, uid string) (*dto.UserResp, error) {
	user, err := s.userRepo.GetUserByID(ctx, uid)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return nil, ErrUserNotFound.WithData("uid", uid)
		default:
			return nil, ErrUnavailable.WithCause(err)
		}
	}
	return &dto.UserResp{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

// DisplayName 实现游戏模块的 UserDirectory 端口：uid → 展示名。
// 查不到时返回空名不返回错误，对局流程不因账号查询失败而中断。
func (s *UserService) DisplayName(ctx context.Context, uid uuid.UUID) (string, error) {
	user, err := s.userRepo.GetUserByID(ctx, uid.String())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil
		}
		return "", err
	}
	return user.Username, nil
}
