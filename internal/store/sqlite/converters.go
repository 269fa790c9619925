package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/inovacc/pokedex/internal/model"
)

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}

	return 0
}

func timeToMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}

	return t.UnixMilli()
}

func millisToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}

	return time.UnixMilli(ms)
}

// rowToModel converts a pokemon row to a model.Pokemon.
func rowToModel(row PokemonRow) (*model.Pokemon, error) {
	var types []string
	if row.Types != "" {
		if err := json.Unmarshal([]byte(row.Types), &types); err != nil {
			return nil, fmt.Errorf("decoding types of pokemon %d: %w", row.ID, err)
		}
	}

	return &model.Pokemon{
		ID:             int(row.ID),
		Name:           row.Name,
		Types:          types,
		HP:             int(row.HP),
		Attack:         int(row.Attack),
		Defense:        int(row.Defense),
		SpecialAttack:  int(row.SpecialAttack),
		SpecialDefense: int(row.SpecialDefense),
		Speed:          int(row.Speed),
		Favorite:       row.Favorite == 1,
		SpriteURL:      row.SpriteURL,
		ShinyURL:       row.ShinyURL,
		Sprite:         row.Sprite,
		Shiny:          row.Shiny,
		FetchedAt:      millisToTime(row.FetchedAt),
	}, nil
}

func rowsToModels(rows []PokemonRow) ([]model.Pokemon, error) {
	out := make([]model.Pokemon, 0, len(rows))

	for _, row := range rows {
		p, err := rowToModel(row)
		if err != nil {
			return nil, err
		}

		out = append(out, *p)
	}

	return out, nil
}

// modelToUpsert converts a model.Pokemon to upsert parameters.
func modelToUpsert(p *model.Pokemon) (UpsertPokemonParams, error) {
	types := p.Types
	if types == nil {
		types = []string{}
	}

	data, err := json.Marshal(types)
	if err != nil {
		return UpsertPokemonParams{}, err
	}

	return UpsertPokemonParams{
		ID:             int64(p.ID),
		Name:           p.Name,
		Types:          string(data),
		HP:             int64(p.HP),
		Attack:         int64(p.Attack),
		Defense:        int64(p.Defense),
		SpecialAttack:  int64(p.SpecialAttack),
		SpecialDefense: int64(p.SpecialDefense),
		Speed:          int64(p.Speed),
		SpriteURL:      p.SpriteURL,
		ShinyURL:       p.ShinyURL,
		FetchedAt:      timeToMillis(p.FetchedAt),
	}, nil
}

func syncRunToRow(r *model.SyncRun) SyncRunRow {
	return SyncRunRow{
		RunID:       r.RunID,
		Kind:        string(r.Kind),
		RangeFrom:   int64(r.From),
		RangeTo:     int64(r.To),
		Stored:      int64(r.Stored),
		Failed:      int64(r.Failed),
		Interrupted: boolToInt64(r.Interrupted),
		StartedAt:   timeToMillis(r.StartedAt),
		FinishedAt:  timeToMillis(r.FinishedAt),
	}
}

func rowToSyncRun(r SyncRunRow) *model.SyncRun {
	return &model.SyncRun{
		RunID:       r.RunID,
		Kind:        model.SyncKind(r.Kind),
		From:        int(r.RangeFrom),
		To:          int(r.RangeTo),
		Stored:      int(r.Stored),
		Failed:      int(r.Failed),
		Interrupted: r.Interrupted == 1,
		StartedAt:   millisToTime(r.StartedAt),
		FinishedAt:  millisToTime(r.FinishedAt),
	}
}
