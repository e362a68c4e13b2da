package domain

import (
	"DiceWars/modules/kit/errx"
)

// 领域错误统一走 errx 业务错误，code 即对局协议里下发给
// 客户端的错误标识。
var (
	ErrPlayerAlreadyInGame = errx.NewBiz("player_already_in_game", "玩家已在对局中")
	ErrGameFull            = errx.NewBiz("game_full", "对局人数已满")
	ErrGameStarted         = errx.NewBiz("game_started", "对局已开始")
	ErrNotEnoughPlayers    = errx.NewBiz("not_enough_players", "人数不足无法开局")
	ErrNotPlayerTurn       = errx.NewBiz("not_player_turn", "未轮到该玩家行动")
	ErrGameNotStarted      = errx.NewBiz("game_not_started", "对局尚未开始")
	ErrGameFinished        = errx.NewBiz("game_finished", "对局已结束")
	ErrColorExhausted      = errx.NewBiz("color_exhausted", "可用颜色已耗尽")
	ErrAreaNotFound        = errx.NewBiz("area_not_found", "区域不存在")
	ErrAreasNotAdjacent    = errx.NewBiz("areas_not_adjacent", "两个区域不相邻")
	ErrAreaNotOwned        = errx.NewBiz("area_not_owned", "区域不属于该玩家")
	ErrSelfAttack          = errx.NewBiz("self_attack", "不能攻击自己的区域")
	ErrNotEnoughDice       = errx.NewBiz("not_enough_dice", "骰子数量不足以发起进攻")
	ErrStackOverflow       = errx.NewBiz("stack_overflow", "骰子堆已达上限")
	ErrStackUnderflow      = errx.NewBiz("stack_underflow", "骰子堆已达下限")
)
