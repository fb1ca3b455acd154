// Command coachctl inspects and administers the coach straight from the
// database: print the seat map, book seats, reset, random fill, and hash an
// operator password for OPERATOR_PASSWORD_HASH.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/iliyamo/coach-seat-reservation/internal/booking"
	"github.com/iliyamo/coach-seat-reservation/internal/config"
	"github.com/iliyamo/coach-seat-reservation/internal/database"
	"github.com/iliyamo/coach-seat-reservation/internal/model"
	"github.com/iliyamo/coach-seat-reservation/internal/repository"
	"github.com/iliyamo/coach-seat-reservation/internal/utils"
)

func main() {
	config.LoadDotEnv()
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	coachCfg := config.LoadCoachConfig()
	return &cli.Command{
		Name:  "coachctl",
		Usage: "administer the coach seat reservation database",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the seat map (XX = reserved)",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					repo, closeDB, err := openRepo()
					if err != nil {
						return err
					}
					defer closeDB()
					c, err := repo.Get(ctx, coachCfg.ID)
					if err != nil {
						return err
					}
					printSeatMap(os.Stdout, *c)
					return nil
				},
			},
			{
				Name:  "book",
				Usage: "book seats with the same allocator the API uses",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "seats", Aliases: []string{"n"}, Usage: "number of seats", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					n := int(cmd.Int("seats"))
					if n <= 0 || n > coachCfg.MaxSeatsPerReq {
						return fmt.Errorf("seats must be between 1 and %d", coachCfg.MaxSeatsPerReq)
					}
					repo, closeDB, err := openRepo()
					if err != nil {
						return err
					}
					defer closeDB()
					out, err := repo.Book(ctx, coachCfg.ID, n)
					if errors.Is(err, repository.ErrInsufficientSeats) || errors.Is(err, repository.ErrNoSelection) {
						return fmt.Errorf("%d seats are not available: %w", n, err)
					}
					if err != nil {
						return err
					}
					fmt.Printf("booked %v (%s) reference=%s\n", out.Booking.Seats, out.Strategy, out.Booking.Reference)
					return nil
				},
			},
			{
				Name:  "reset",
				Usage: "make every seat available",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					repo, closeDB, err := openRepo()
					if err != nil {
						return err
					}
					defer closeDB()
					_, err = repo.Replace(ctx, booking.NewEmptyCoach(coachCfg.ID, coachCfg.TotalSeats, coachCfg.RowWidth))
					return err
				},
			},
			{
				Name:  "fill",
				Usage: "replace the reservations with a random set of seats",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "ratio", Value: coachCfg.FillRatio, Usage: "share of seats to reserve (0..1)"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					repo, closeDB, err := openRepo()
					if err != nil {
						return err
					}
					defer closeDB()
					current, err := repo.Get(ctx, coachCfg.ID)
					if err != nil {
						return err
					}
					rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
					filled, err := repo.Replace(ctx, booking.RandomFill(*current, rng, cmd.Float64("ratio")))
					if err != nil {
						return err
					}
					printSeatMap(os.Stdout, *filled)
					return nil
				},
			},
			{
				Name:      "hash-password",
				Usage:     "print a bcrypt hash for OPERATOR_PASSWORD_HASH",
				ArgsUsage: "<password>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					plain := cmd.Args().First()
					if plain == "" {
						return errors.New("password argument required")
					}
					hash, err := utils.HashPassword(plain, config.LoadBcryptCost())
					if err != nil {
						return err
					}
					fmt.Println(hash)
					return nil
				},
			},
		},
	}
}

func openRepo() (*repository.CoachRepo, func(), error) {
	cfg := config.LoadDB()
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewCoachRepo(db), func() { _ = db.Close() }, nil
}

// printSeatMap writes one line per row, e.g. "A | [ 1] [XX] [ 3]".
func printSeatMap(w io.Writer, c model.Coach) {
	for i, row := range booking.BuildSeatMap(c) {
		cells := make([]string, len(row))
		for j, s := range row {
			if s.Status == booking.SeatReserved {
				cells[j] = "[XX]"
			} else {
				cells[j] = fmt.Sprintf("[%2d]", s.Number)
			}
		}
		fmt.Fprintf(w, "%2s | %s\n", booking.RowLabel(i), strings.Join(cells, " "))
	}
	fmt.Fprintf(w, "%d of %d seats available\n", c.AvailableCount(), c.TotalSeats)
}
