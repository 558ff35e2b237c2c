package cli

import (
	"github.com/spf13/cobra"

	"github.com/OKaluzny/sui-tips/internal/feed"
	"github.com/OKaluzny/sui-tips/internal/storage"
	"github.com/OKaluzny/sui-tips/pkg/models"
)

func newFeedCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Show recent tips, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := feed.NewPoller(a.client(), storage.NewMemoryFeedStore(), a.cfg.Tokens(), feed.Config{
				EventType: a.cfg.TipEventType(),
				Interval:  a.cfg.FeedPollInterval,
				Limit:     a.cfg.FeedLimit,
			})

			if !watch {
				events, err := p.Refresh(cmd.Context())
				if err != nil {
					return err
				}
				return a.printFeed(events)
			}

			p.OnUpdate(func(events []models.TipEvent) {
				_ = a.printFeed(events)
			})
			task := p.Start(cmd.Context())
			<-cmd.Context().Done()
			task.Stop()
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep polling until interrupted")
	return cmd
}

func (a *app) printFeed(events []models.TipEvent) error {
	if a.jsonOut {
		return printJSON(a.out, events)
	}
	printFeed(a.out, events)
	return nil
}
