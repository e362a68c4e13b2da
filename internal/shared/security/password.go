package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// EncodePassword 计算口令散列：sha256(password + passcode)。
// passcode 是注册时为每个用户生成的随机盐，存储在用户记录里。
func EncodePassword(password, passcode string) string {
	sum := sha256.Sum256([]byte(password + passcode))
	return hex.EncodeToString(sum[:])
}
