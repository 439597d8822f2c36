// Command reelctl is a terminal client for a reeltalk server. It keeps a
// local session and review snapshot under the cache directory, so the
// reel renders instantly from the last snapshot while the fresh list is
// fetched.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"reeltalk/internal/reel"
	"reeltalk/internal/tmdb"
	"reeltalk/pkg/utils"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const usage = `Usage: reelctl <command> [args]

Commands:
  signup <username> <email> <password>   Create an account and sign in
  login <email> <password>               Sign in
  logout                                 Sign out
  whoami                                 Show the signed-in user
  reel                                   Show your reviews (cached first, then fresh)
  review <movie_id> <rating> <comment>   Review a film (rating 1-5)
  edit <review_id> <rating> <comment>    Rewrite one of your reviews
  rm <review_id>                         Delete one of your reviews
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	opts := badger.DefaultOptions(config.Cache.Dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open cache at %s: %v", config.Cache.Dir, err)
	}
	defer db.Close()

	meta := tmdb.NewClient(config.TMDB, logger)
	lookup := func(ctx context.Context, movieID int64) (string, error) {
		movie, err := meta.MovieDetails(ctx, movieID)
		if err != nil {
			return "", err
		}
		return meta.PosterURL(movie.PosterPath), nil
	}

	client := reel.New(config.Client.ServerURL, db, lookup, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := run(ctx, client, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *reel.Client, command string, args []string) error {
	switch command {
	case "signup":
		if len(args) != 3 {
			return fmt.Errorf("usage: reelctl signup <username> <email> <password>")
		}
		user, err := client.Register(ctx, args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("Signed up as %s\n", user.Username)
		return nil

	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: reelctl login <email> <password>")
		}
		user, err := client.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s\n", user.Username)
		return nil

	case "logout":
		if err := client.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil

	case "whoami":
		user, _, ok := client.Session().Current()
		if !ok {
			fmt.Println("Not signed in")
			return nil
		}
		fmt.Printf("%s <%s>\n", user.Username, user.Email)
		return nil

	case "reel":
		return showReel(ctx, client)

	case "review":
		if len(args) != 3 {
			return fmt.Errorf("usage: reelctl review <movie_id> <rating> <comment>")
		}
		movieID := utils.ParseInt64(args[0])
		rating := utils.ParseInt(args[1], 0)
		review, err := client.CreateReview(ctx, movieID, args[2], rating)
		if err != nil {
			return err
		}
		fmt.Printf("Reviewed %s (%d/5): %s\n", review.MovieTitle, review.Rating, review.Comment)
		return nil

	case "edit":
		if len(args) != 3 {
			return fmt.Errorf("usage: reelctl edit <review_id> <rating> <comment>")
		}
		rating := utils.ParseInt(args[1], 0)
		review, err := client.UpdateReview(ctx, args[0], args[2], rating)
		if err != nil {
			return err
		}
		fmt.Printf("Updated review of %s (%d/5)\n", review.MovieTitle, review.Rating)
		return nil

	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: reelctl rm <review_id>")
		}
		if err := client.DeleteReview(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("Review deleted")
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func showReel(ctx context.Context, client *reel.Client) error {
	fresh, err := client.MyReel(ctx, func(cached []reel.Review) {
		if len(cached) == 0 {
			return
		}
		fmt.Println("(cached)")
		printReviews(cached)
	})
	if err != nil {
		return err
	}

	fmt.Println("(fresh)")
	printReviews(fresh)
	return nil
}

func printReviews(reviews []reel.Review) {
	if len(reviews) == 0 {
		fmt.Println("  no reviews yet")
		return
	}
	for _, r := range reviews {
		title := r.MovieTitle
		if title == "" {
			title = fmt.Sprintf("movie %d", r.MovieID)
		}
		fmt.Printf("  %s  %s  %d/5  %s\n", r.ID, title, r.Rating, r.Comment)
	}
}
