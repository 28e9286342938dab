package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"heartbeats/config"
	hbhttp "heartbeats/http"
	"heartbeats/logging"
	"heartbeats/ml"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "heartbeats",
		Short: "Heart disease screening web application",
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newCheckCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), resolveConfigPath(configPath, cmd.Flags().Changed("config")))
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "Path to the YAML config file")
	return cmd
}

func newCheckCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load the model and classify the reference patient",
		Long: `Load the configured model, encode the built-in reference patient and
print the feature vector with the resulting diagnosis.

Example: heartbeats check --config config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, resolveConfigPath(configPath, cmd.Flags().Changed("config")))
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "Path to the YAML config file")
	return cmd
}

// resolveConfigPath falls back to the parent directory so the binary also
// works when started from cmd/. A missing default file means defaults only;
// an explicit --config path is used as given and must exist.
func resolveConfigPath(path string, explicit bool) string {
	if explicit {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if filepath.IsAbs(path) {
		return ""
	}
	parent := filepath.Join("..", path)
	if _, err := os.Stat(parent); err == nil {
		return parent
	}
	return ""
}

func loadPredictor(cfg *config.Config, logger *zap.Logger) (*ml.Predictor, error) {
	model, err := ml.LoadModel(cfg.ML.ModelType, cfg.ML.ModelPath)
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("type", cfg.ML.ModelType),
		zap.String("path", cfg.ML.ModelPath),
	}
	if tree, ok := model.(*ml.DecisionTree); ok {
		fields = append(fields, zap.Int("depth", tree.Depth()))
	}
	logger.Info("model loaded", fields...)

	return ml.NewPredictor(model, logger), nil
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	predictor, err := loadPredictor(cfg, logger)
	if err != nil {
		return err
	}

	sessions, err := hbhttp.NewSessionStore(cfg.Session.Capacity, cfg.Session.CookieName)
	if err != nil {
		return err
	}

	server, err := hbhttp.NewServer(hbhttp.ServerConfigFrom(cfg), predictor, sessions, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(server.Start)
	group.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		return server.Stop(context.Background())
	})

	if err := group.Wait(); err != nil {
		logger.Error("server exited", zap.Error(err))
		return err
	}
	logger.Info("exiting")
	return nil
}

// referencePatient is the worked example used to smoke-test a model file.
func referencePatient() ml.RawFormInput {
	return ml.RawFormInput{
		ml.FieldAge:      "63",
		ml.FieldSex:      "Laki-laki",
		ml.FieldCP:       "Typical angina",
		ml.FieldTrestbps: "145",
		ml.FieldChol:     "233",
		ml.FieldFBS:      "Ya",
		ml.FieldRestECG:  "Normal",
		ml.FieldThalach:  "150",
		ml.FieldExang:    "Tidak",
		ml.FieldOldpeak:  "2.3",
		ml.FieldSlope:    "Menurun",
		ml.FieldCA:       "0",
		ml.FieldThal:     "Cacat tetap",
	}
}

func runCheck(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	predictor, err := loadPredictor(cfg, zap.NewNop())
	if err != nil {
		return err
	}

	vector, err := ml.Encode(referencePatient())
	if err != nil {
		return err
	}
	diagnosis, err := predictor.Predict(vector)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "features: %v\n", vector.Slice())
	fmt.Fprintf(out, "diagnosis: %s (%d)\n", diagnosis, diagnosis.Label())
	fmt.Fprintln(out, diagnosis.Message())
	return nil
}
