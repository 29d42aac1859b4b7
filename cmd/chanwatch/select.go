package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raykavin/chanwatch/internal/config"
	"github.com/raykavin/chanwatch/pkg/dialog/telegram"
	"github.com/raykavin/chanwatch/pkg/notification"
	"github.com/raykavin/chanwatch/pkg/picker"
	"github.com/raykavin/chanwatch/pkg/prompt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func buildSelectCmd() *cobra.Command {
	selectCmd := &cobra.Command{
		Use:   "select",
		Short: "List your chats and write the monitored list",
		RunE:  runSelect,
	}

	selectCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Monitored list path (default from MONITORED_CHANNELS_PATH)")
	addSessionFlags(selectCmd)

	return selectCmd
}

func buildListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your chats without changing the monitored list",
		RunE:  runList,
	}

	addSessionFlags(listCmd)
	return listCmd
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of chats to fetch (default from DIALOG_LIMIT)")
	cmd.Flags().StringVarP(&timeout, "timeout", "t", "", "Abort the session after this long (e.g. 10m, 1d)")
}

func runSelect(cmd *cobra.Command, _ []string) error {
	ctx, stop, err := sessionContext(cmd.Context())
	if err != nil {
		return err
	}
	defer stop()

	stdin := prompt.NewReader(os.Stdin)
	p, err := newPicker(stdin)
	if err != nil {
		return err
	}

	return p.Run(ctx)
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx, stop, err := sessionContext(cmd.Context())
	if err != nil {
		return err
	}
	defer stop()

	p, err := newPicker(prompt.NewReader(os.Stdin))
	if err != nil {
		return err
	}

	return p.List(ctx)
}

// sessionContext is cancelled by SIGINT/SIGTERM and by the session timeout.
func sessionContext(parent context.Context) (context.Context, context.CancelFunc, error) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)

	d := appConfig.SessionTimeout
	if timeout != "" {
		var err error
		if d, err = config.ParseTimeout(timeout); err != nil {
			stop()
			return nil, nil, err
		}
	}
	if d == 0 {
		return ctx, stop, nil
	}

	ctx, cancel := context.WithTimeout(ctx, d)
	return ctx, func() { cancel(); stop() }, nil
}

func newPicker(stdin *prompt.Reader) (*picker.Picker, error) {
	zapLogger := zap.NewNop()
	if debug {
		var err error
		if zapLogger, err = zap.NewDevelopment(); err != nil {
			return nil, err
		}
	}

	session, err := telegram.New(
		telegram.Config{
			AppID:       appConfig.Telegram.AppID,
			AppHash:     appConfig.Telegram.AppHash,
			SessionPath: appConfig.Telegram.SessionPath,
		},
		log,
		telegram.WithAuthenticator(telegram.NewTerminal(appConfig.Telegram.Phone, stdin, os.Stdout)),
		telegram.WithZap(zapLogger),
	)
	if err != nil {
		return nil, err
	}

	path := appConfig.OutputPath
	if outputPath != "" {
		path = outputPath
	}

	dialogLimit := appConfig.DialogLimit
	if limit > 0 {
		dialogLimit = limit
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	options := []picker.Option{
		picker.WithInput(stdin),
		picker.WithOutput(os.Stdout),
		picker.WithColor(interactive),
		picker.WithLimit(dialogLimit),
		picker.WithPath(path),
		picker.WithLogger(log),
	}

	// Listing piped elsewhere still gets feedback on the terminal.
	if !interactive && term.IsTerminal(int(os.Stderr.Fd())) {
		options = append(options, picker.WithProgress(os.Stderr))
	}

	if appConfig.Notify.Enabled {
		notifier, err := notification.NewTelegram(notification.Settings{
			Token: appConfig.Notify.Token,
			Users: appConfig.Notify.Users,
		})
		if err != nil {
			log.WithError(err).Warn("telegram notifications disabled")
		} else {
			options = append(options, picker.WithNotifier(notifier))
		}
	}

	return picker.New(session, options...), nil
}
