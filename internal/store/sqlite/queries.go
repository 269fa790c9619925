package sqlite

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries holds the hand-maintained statements for the pokemon schema.
type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// PokemonRow is one row of the pokemon table.
type PokemonRow struct {
	ID             int64
	Name           string
	Types          string
	HP             int64
	Attack         int64
	Defense        int64
	SpecialAttack  int64
	SpecialDefense int64
	Speed          int64
	SpriteURL      string
	ShinyURL       string
	FetchedAt      int64
	Favorite       int64
	Sprite         []byte
	Shiny          []byte
}

const pokemonColumns = `id, name, types, hp, attack, defense, special_attack, special_defense, speed,
	sprite_url, shiny_url, fetched_at, favorite, sprite, shiny`

func scanPokemon(row interface{ Scan(...any) error }) (PokemonRow, error) {
	var r PokemonRow

	err := row.Scan(
		&r.ID, &r.Name, &r.Types,
		&r.HP, &r.Attack, &r.Defense, &r.SpecialAttack, &r.SpecialDefense, &r.Speed,
		&r.SpriteURL, &r.ShinyURL, &r.FetchedAt, &r.Favorite, &r.Sprite, &r.Shiny,
	)

	return r, err
}

// UpsertPokemonParams are the remote-sourced columns written by a sync.
type UpsertPokemonParams struct {
	ID             int64
	Name           string
	Types          string
	HP             int64
	Attack         int64
	Defense        int64
	SpecialAttack  int64
	SpecialDefense int64
	Speed          int64
	SpriteURL      string
	ShinyURL       string
	FetchedAt      int64
}

const upsertPokemon = `
INSERT INTO pokemon (id, name, types, hp, attack, defense, special_attack, special_defense, speed,
	sprite_url, shiny_url, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	types = excluded.types,
	hp = excluded.hp,
	attack = excluded.attack,
	defense = excluded.defense,
	special_attack = excluded.special_attack,
	special_defense = excluded.special_defense,
	speed = excluded.speed,
	sprite_url = excluded.sprite_url,
	shiny_url = excluded.shiny_url,
	fetched_at = excluded.fetched_at
`

func (q *Queries) UpsertPokemon(ctx context.Context, arg UpsertPokemonParams) error {
	_, err := q.db.ExecContext(ctx, upsertPokemon,
		arg.ID, arg.Name, arg.Types,
		arg.HP, arg.Attack, arg.Defense, arg.SpecialAttack, arg.SpecialDefense, arg.Speed,
		arg.SpriteURL, arg.ShinyURL, arg.FetchedAt,
	)

	return err
}

func (q *Queries) GetPokemon(ctx context.Context, id int64) (PokemonRow, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+pokemonColumns+` FROM pokemon WHERE id = ?`, id)

	return scanPokemon(row)
}

func (q *Queries) listPokemon(ctx context.Context, query string, args ...any) ([]PokemonRow, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PokemonRow

	for rows.Next() {
		r, err := scanPokemon(rows)
		if err != nil {
			return nil, err
		}

		items = append(items, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (q *Queries) GetAllPokemon(ctx context.Context) ([]PokemonRow, error) {
	return q.listPokemon(ctx, `SELECT `+pokemonColumns+` FROM pokemon ORDER BY id ASC`)
}

func (q *Queries) ListMissingSprites(ctx context.Context) ([]PokemonRow, error) {
	return q.listPokemon(ctx, `SELECT `+pokemonColumns+` FROM pokemon
		WHERE sprite IS NULL OR length(sprite) = 0 OR shiny IS NULL OR length(shiny) = 0
		ORDER BY id ASC`)
}

func (q *Queries) ListPokemonIDs(ctx context.Context) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id FROM pokemon ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (q *Queries) CountPokemon(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pokemon`).Scan(&count)

	return count, err
}

func (q *Queries) UpdateFavorite(ctx context.Context, id int64, favorite int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `UPDATE pokemon SET favorite = ? WHERE id = ?`, favorite, id)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (q *Queries) GetFavorite(ctx context.Context, id int64) (int64, error) {
	var fav int64
	err := q.db.QueryRowContext(ctx, `SELECT favorite FROM pokemon WHERE id = ?`, id).Scan(&fav)

	return fav, err
}

func (q *Queries) UpdateSprites(ctx context.Context, id int64, sprite, shiny []byte) (int64, error) {
	res, err := q.db.ExecContext(ctx, `UPDATE pokemon SET sprite = ?, shiny = ? WHERE id = ?`, sprite, shiny, id)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

// SyncRunRow is one row of the sync_runs table.
type SyncRunRow struct {
	RunID       string
	Kind        string
	RangeFrom   int64
	RangeTo     int64
	Stored      int64
	Failed      int64
	Interrupted int64
	StartedAt   int64
	FinishedAt  int64
}

func (q *Queries) InsertSyncRun(ctx context.Context, r SyncRunRow) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO sync_runs (run_id, kind, range_from, range_to, stored, failed, interrupted, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Kind, r.RangeFrom, r.RangeTo, r.Stored, r.Failed, r.Interrupted, r.StartedAt, r.FinishedAt,
	)

	return err
}

func (q *Queries) LastSyncRun(ctx context.Context, kind string) (SyncRunRow, error) {
	var r SyncRunRow

	err := q.db.QueryRowContext(ctx, `
		SELECT run_id, kind, range_from, range_to, stored, failed, interrupted, started_at, finished_at
		FROM sync_runs WHERE kind = ?
		ORDER BY finished_at DESC, rowid DESC LIMIT 1`, kind,
	).Scan(&r.RunID, &r.Kind, &r.RangeFrom, &r.RangeTo, &r.Stored, &r.Failed, &r.Interrupted, &r.StartedAt, &r.FinishedAt)

	return r, err
}
