package scoringmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	scoringdb "github.com/scramble-live/scoreboard/app/modules/scoring/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating scoring tables...")

		models := []any{
			(*scoringdb.Organization)(nil),
			(*scoringdb.Event)(nil),
			(*scoringdb.EventHole)(nil),
			(*scoringdb.Team)(nil),
			(*scoringdb.HoleScore)(nil),
		}
		for _, model := range models {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		// Unique pairs the core relies on: slug addressing, the total par
		// mapping, and the single-row-per-hole ledger upsert target.
		if _, err := db.NewCreateIndex().
			Model((*scoringdb.Event)(nil)).
			Index("events_org_slug_idx").
			Unique().
			Column("org_id", "slug").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().
			Model((*scoringdb.EventHole)(nil)).
			Index("event_holes_event_hole_idx").
			Unique().
			Column("event_id", "hole_number").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().
			Model((*scoringdb.HoleScore)(nil)).
			Index("hole_scores_team_hole_idx").
			Unique().
			Column("team_id", "hole_number").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().
			Model((*scoringdb.Team)(nil)).
			Index("teams_event_idx").
			Column("event_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Scoring tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scoring tables...")

		models := []any{
			(*scoringdb.HoleScore)(nil),
			(*scoringdb.Team)(nil),
			(*scoringdb.EventHole)(nil),
			(*scoringdb.Event)(nil),
			(*scoringdb.Organization)(nil),
		}
		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Scoring tables dropped successfully!")
		return nil
	})
}
