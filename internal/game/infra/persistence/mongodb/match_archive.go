// Package mongodb 提供终局对战的只写归档。
// 归档是旁路：活跃对局状态只存在于内存，归档永不读回。
package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"DiceWars/internal/game/domain"
)

const defaultCollectionName = "matches"

// MatchDoc 是归档到 mongo 的一条终局记录。
type MatchDoc struct {
	ID          string           `bson:"_id"`
	CreatorID   string           `bson:"creator_id"`
	CreatorName string           `bson:"creator_name"`
	Players     []MatchPlayerDoc `bson:"players"`
	Reason      string           `bson:"reason"`
	FinishedAt  time.Time        `bson:"finished_at"`
}

type MatchPlayerDoc struct {
	ID    string `bson:"id"`
	Name  string `bson:"name"`
	Color string `bson:"color"`
}

type MatchArchive struct {
	coll *mongo.Collection
}

func NewMatchArchive(db *mongo.Database) *MatchArchive {
	return &MatchArchive{
		coll: db.Collection(defaultCollectionName),
	}
}

// Save 写入一条终局记录。同一对局重复终结不会发生，
// 但 _id 主键天然兜底防重。
func (r *MatchArchive) Save(ctx context.Context, game *domain.Game, creatorID, creatorName, reason string) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb match collection is nil")
	}
	if game == nil {
		return nil
	}

	doc := MatchDoc{
		ID:          game.ID.String(),
		CreatorID:   creatorID,
		CreatorName: creatorName,
		Players:     make([]MatchPlayerDoc, 0, len(game.Players)),
		Reason:      reason,
		FinishedAt:  time.Now(),
	}
	for _, p := range game.Players {
		doc.Players = append(doc.Players, MatchPlayerDoc{
			ID:    p.ID.String(),
			Name:  p.Name,
			Color: p.Color.String(),
		})
	}

	_, err := r.coll.InsertOne(ctx, doc)
	return err
}
