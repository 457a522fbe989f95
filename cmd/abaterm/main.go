package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"abaterm/internal/bootstrap"
	sessiondto "abaterm/internal/modules/session/dto"
	"abaterm/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "abaterm",
		Short:         "Registro de sesiones de terapia ABA en la terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.abaterm)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newCatalogCmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newSummaryCmd(&dataDir))
	root.AddCommand(newHistoryCmd(&dataDir))
	root.AddCommand(newConfigCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the data-entry terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newCatalogCmd(dataDir *string) *cobra.Command {
	var refresh bool
	catalog := &cobra.Command{
		Use:   "catalog",
		Short: "Show the program, student, and therapist lists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			ctx := context.Background()
			out := app.CatalogCLI.Get(ctx)
			if refresh {
				out = app.CatalogCLI.Refresh(ctx)
			}
			if out.Degraded {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "sin conexión: listas locales")
			} else if out.Empty {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "advertencia: la hoja devolvió listas vacías")
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "programas:")
			for _, p := range out.Programs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "estudiantes:")
			for _, s := range out.Students {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", s)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "terapeutas:")
			for _, t := range out.Therapists {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", t)
			}
			return nil
		},
	}
	catalog.Flags().BoolVar(&refresh, "refresh", false, "force a re-fetch from the sheet")
	return catalog
}

var sessionFields = map[string]sessiondto.SessionField{
	"student":      sessiondto.FieldStudentName,
	"therapist":    sessiondto.FieldTherapistName,
	"date":         sessiondto.FieldDate,
	"observations": sessiondto.FieldGeneralObservations,
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Inspect and edit the session draft"}

	session.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current session draft",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			printSession(cmd, app.SessionCLI.Current(context.Background()))
			return nil
		},
	})

	set := &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set a session field: student|therapist|date|observations",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := sessionFields[args[0]]
			if !ok {
				return fmt.Errorf("unknown field %q", args[0])
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			out := app.SessionCLI.UpdateField(context.Background(), field, strings.Join(args[1:], " "))
			printSession(cmd, out)
			return nil
		},
	}
	session.AddCommand(set)

	session.AddCommand(&cobra.Command{
		Use:   "add <program name>",
		Short: "Add a program to the session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			out, ok := app.SessionCLI.AddProgram(context.Background(), strings.Join(args, " "))
			if !ok {
				return fmt.Errorf("program name must not be blank")
			}
			printSession(cmd, out)
			return nil
		},
	})

	var correct, incorrect int
	count := &cobra.Command{
		Use:   "count <program-id>",
		Short: "Set trial counts for a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			update := sessiondto.ProgramUpdate{}
			if cmd.Flags().Changed("correct") {
				update.CorrectCount = &correct
			}
			if cmd.Flags().Changed("incorrect") {
				update.IncorrectCount = &incorrect
			}
			out := app.SessionCLI.UpdateProgram(context.Background(), args[0], update)
			printSession(cmd, out)
			return nil
		},
	}
	count.Flags().IntVar(&correct, "correct", 0, "correct trial count")
	count.Flags().IntVar(&incorrect, "incorrect", 0, "incorrect trial count")
	session.AddCommand(count)

	var reinforcer bool
	tag := &cobra.Command{
		Use:   "tag <program-id> <value>",
		Short: "Toggle a help or reinforcer tag on a program",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			out := app.SessionCLI.ToggleTag(context.Background(), args[0], reinforcer, strings.Join(args[1:], " "))
			printSession(cmd, out)
			return nil
		},
	}
	tag.Flags().BoolVar(&reinforcer, "reinforcer", false, "toggle a reinforcer instead of a help type")
	session.AddCommand(tag)

	session.AddCommand(&cobra.Command{
		Use:   "remove <program-id>",
		Short: "Remove a program from the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			printSession(cmd, app.SessionCLI.RemoveProgram(context.Background(), args[0]))
			return nil
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Submit the session to the sheet and reset the draft",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			out, err := app.SessionCLI.Save(context.Background())
			if err != nil {
				return err
			}
			if !out.Succeeded {
				return fmt.Errorf("%s", out.Message)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "sesión guardada correctamente")
			return nil
		},
	})

	return session
}

func printSession(cmd *cobra.Command, s sessiondto.SessionOutput) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "estudiante: %s\nterapeuta: %s\nfecha: %s\ninicio: %s\n", s.StudentName, s.TherapistName, s.Date, s.StartTime)
	if s.GeneralObservations != "" {
		_, _ = fmt.Fprintf(w, "observaciones: %s\n", s.GeneralObservations)
	}
	for _, p := range s.Programs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t✓%d ✗%d\t%s\n", p.ID, p.Name, p.CorrectCount, p.IncorrectCount, p.PercentLabel)
	}
}

func newSummaryCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Generate a clinical summary of the session draft",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			out := app.SummaryCLI.Generate(context.Background())
			if out.Failed {
				return fmt.Errorf("%s", out.Text)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			return nil
		},
	}
}

func newHistoryCmd(dataDir *string) *cobra.Command {
	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "List locally archived submissions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			rows, err := app.Archive().RecentSubmissions(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "sin sesiones archivadas")
				return nil
			}
			for _, r := range rows {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s–%s\t%d programas\n",
					r.Date, r.StudentName, r.TherapistName, r.StartTime, r.EndTime, r.ProgramCount)
			}
			return nil
		},
	}
	history.Flags().IntVar(&limit, "limit", 20, "maximum rows")
	return history
}

func newConfigCmd(dataDir *string) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Manage the abaterm configuration"}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config template to the data directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if *dataDir != "" {
				cfg.DataDir = *dataDir
			}
			if err := config.Write(cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", cfg.DataDir)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*dataDir)
			if err != nil {
				return err
			}
			key := "(no configurada)"
			if cfg.Gemini.APIKey != "" {
				key = "(configurada)"
			}
			endpoint := cfg.EndpointURL
			if !cfg.EndpointConfigured() {
				endpoint += "  ⚠ sin configurar"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "endpoint: %s\ngemini api key: %s\ngemini model: %s\nplugin: %s\ndata dir: %s\n",
				endpoint, key, cfg.Gemini.Model, cfg.SummarizerPlugin, cfg.DataDir)
			return nil
		},
	})

	return cfgCmd
}
