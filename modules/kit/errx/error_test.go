package errx

import (
	"errors"
	"fmt"
	"testing"
)

func TestIs_同码不同实例应视为同一语义(t *testing.T) {
	base := NewBiz("GAME_FULL", "游戏已满")
	derived := base.WithData("game_id", "g1").WithCause(fmt.Errorf("boom"))

	if !errors.Is(derived, base) {
		t.Fatalf("WithData/WithCause 派生后应保持同码语义")
	}
	if errors.Is(derived, NewBiz("OTHER", "")) {
		t.Fatalf("不同码不应匹配")
	}
}

func TestWithData_不应污染原对象(t *testing.T) {
	base := NewBiz("X", "x")
	_ = base.WithData("k", "v")
	if base.Data() != nil {
		t.Fatalf("原对象 data 应保持为空, got=%v", base.Data())
	}
}

func TestWithCause_应保留溯源链(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := ErrUnavailable.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Fatalf("期望沿 cause 链找到原始错误")
	}
	if CodeOf(err) != CodeUnavailable {
		t.Fatalf("CodeOf=%v", CodeOf(err))
	}
}

func TestMsgOf_非errx错误回退到Error(t *testing.T) {
	plain := errors.New("plain")
	if MsgOf(plain) != "plain" {
		t.Fatalf("got %q", MsgOf(plain))
	}
	if MsgOf(NewBiz("C", "消息")) != "消息" {
		t.Fatalf("got %q", MsgOf(NewBiz("C", "消息")))
	}
}
