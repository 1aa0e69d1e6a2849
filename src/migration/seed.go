package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	lorem "github.com/HandmadeNetwork/golorem"
	"github.com/corkboard/corkboard/src/auth"
	"github.com/corkboard/corkboard/src/config"
	"github.com/corkboard/corkboard/src/data"
	"github.com/corkboard/corkboard/src/db"
	"github.com/corkboard/corkboard/src/migration/types"
	"github.com/corkboard/corkboard/src/models"
	"github.com/jackc/pgx/v5/tracelog"
)

func LatestVersion() types.MigrationVersion {
	allVersions := getSortedMigrationVersions()
	return allVersions[len(allVersions)-1]
}

// Seeds the database with sample data for local dev.
func SampleSeed() {
	Migrate(LatestVersion())

	ctx := context.Background()
	conn := db.NewConnWithConfig(config.PostgresConfig{
		LogLevel: tracelog.LogLevelWarn,
	})
	defer conn.Close(ctx)

	users := data.NewUserStore(conn)
	notes := data.NewNoteStore(conn)
	pins := data.NewPinStore(conn)

	fmt.Println("Creating users (all with password \"password\")...")
	alice := seedUser(ctx, users, "alice")
	bob := seedUser(ctx, users, "bob")
	charlie := seedUser(ctx, users, "charlie")

	fmt.Println("Creating notes...")
	for _, user := range []*models.User{alice, bob, charlie} {
		numNotes := rand.Intn(4) + 2
		for i := 0; i < numNotes; i++ {
			_, err := notes.Create(ctx, user.ID, lorem.Sentence(2, 6), lorem.Paragraph(1, 3))
			if err != nil {
				panic(err)
			}
		}
	}

	fmt.Println("Creating pin boards...")
	for _, user := range []*models.User{alice, bob} {
		payload, err := json.Marshal([]map[string]any{
			{"x": rand.Intn(800), "y": rand.Intn(600), "label": lorem.Word(3, 10)},
			{"x": rand.Intn(800), "y": rand.Intn(600), "label": lorem.Word(3, 10)},
		})
		if err != nil {
			panic(err)
		}
		_, err = pins.Save(ctx, user.ID, payload)
		if err != nil {
			panic(err)
		}
	}

	fmt.Println("Done!")
}

func seedUser(ctx context.Context, users *data.UserStore, username string) *models.User {
	user, err := users.Create(ctx, username, auth.HashPassword("password").String())
	if err != nil {
		panic(err)
	}
	return user
}
