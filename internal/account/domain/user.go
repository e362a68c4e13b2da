package domain

import "time"

type User struct {
	ID       string    `gorm:"column:id;type:varchar(36);primaryKey;comment:用户ID" json:"id"`
	Username string    `gorm:"column:username;type:varchar(20);uniqueIndex;not null;comment:用户名" json:"username" validate:"min=4,max=20,regexp=^[a-zA-Z0-9_]*$"`
	Email    string    `gorm:"column:email;type:varchar(100);comment:邮箱" json:"email"`
	Passcode string    `gorm:"column:passcode;type:varchar(255);comment:安全码" json:"passcode"`
	Passwd   string    `gorm:"column:passwd;type:varchar(255);comment:密码" json:"passwd"`
	Ctime    time.Time `gorm:"column:ctime;autoCreateTime;comment:创建时间" json:"ctime"`
	Mtime    time.Time `gorm:"column:mtime;autoUpdateTime;comment:更新时间" json:"mtime"`
}

func (User) TableName() string {
	return "user_info"
}

func (u User) CheckPassword(pwd string, encrypt func(plaintext, passcode string) string) bool {
	if pwd == "" {
		return false
	}
	return encrypt(pwd, u.Passcode) == u.Passwd
}
