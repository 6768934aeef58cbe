// 指示: miu200521358
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_rigtools/pkg/adapter/io_model/scene"
	"github.com/miu200521358/mu_rigtools/pkg/adapter/mhost"
	"github.com/miu200521358/mu_rigtools/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_rigtools/pkg/infra/config"
	"github.com/miu200521358/mu_rigtools/pkg/infra/mlogging"
	"github.com/miu200521358/mu_rigtools/pkg/usecase/minteractor"
	"github.com/spf13/cobra"
	"golang.org/x/text/message"
)

const (
	appName        = "mu_rigtools"
	outputSuffix   = "_rig"
	chainCommand   = "chain"
	chainEndpoints = 2
)

// options はCLI引数を保持する。
type options struct {
	inputPath    string
	outputPath   string
	armatureName string
	boneNames    []string
	targetPrefix string
	controlLayer string
	lang         string
	logLevel     string
}

// main はシーンYAMLへリグ構築処理を適用する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	root := newRootCommand(cfg, out, errOut)
	root.SetArgs(args)
	return root.Execute()
}

// newRootCommand は処理種別ごとのサブコマンドを持つルートコマンドを生成する。
func newRootCommand(cfg config.Config, out io.Writer, errOut io.Writer) *cobra.Command {
	opts := &options{}
	printer := messages.NewPrinter(cfg.Lang)
	root := &cobra.Command{
		Use:           appName,
		Short:         printer.Sprintf(messages.HelpUsage),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.inputPath, "in", "", printer.Sprintf(messages.LabelInput))
	flags.StringVar(&opts.outputPath, "out", "", printer.Sprintf(messages.LabelOutput))
	flags.StringVar(&opts.armatureName, "armature", "", printer.Sprintf(messages.LabelArmature))
	flags.StringSliceVar(&opts.boneNames, "bones", nil, printer.Sprintf(messages.LabelBones))
	flags.StringVar(&opts.targetPrefix, "prefix", cfg.TargetPrefix, printer.Sprintf(messages.LabelPrefix))
	flags.StringVar(&opts.controlLayer, "control-layer", cfg.ControlLayer, printer.Sprintf(messages.LabelControlLayer))
	flags.StringVar(&opts.lang, "lang", cfg.Lang, printer.Sprintf(messages.LabelLang))
	flags.StringVar(&opts.logLevel, "log-level", cfg.LogLevel, printer.Sprintf(messages.LabelLogLevel))

	for _, procedure := range minteractor.ProcedureKinds() {
		procedure := procedure
		root.AddCommand(&cobra.Command{
			Use:  string(procedure),
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runProcedure(*opts, procedure, cmd.OutOrStdout(), cmd.ErrOrStderr())
			},
		})
	}
	root.AddCommand(&cobra.Command{
		Use:  chainCommand,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChain(*opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	})
	return root
}

// runProcedure はシーンを読み込み、処理を実行して保存する。
func runProcedure(opts options, procedure minteractor.ProcedureKind, out io.Writer, errOut io.Writer) error {
	printer, loaded, err := prepare(opts, errOut)
	if err != nil {
		return err
	}
	outputPath, err := resolveOutputPath(opts.inputPath, opts.outputPath)
	if err != nil {
		return err
	}

	uc := newUsecase(opts, loaded)
	report := uc.ExecuteOperator(minteractor.OperatorRequest{
		Procedure:    procedure,
		ArmatureName: opts.armatureName,
		BoneNames:    opts.boneNames,
	})
	fmt.Fprintf(out, "[%s] %s: %s\n", appName, report.Level, messages.FormatReport(printer, report))
	if !report.Succeeded() {
		return fmt.Errorf("%s: %w", procedure, report.Err)
	}

	if err := scene.NewSceneRepository().Save(outputPath, loaded); err != nil {
		return err
	}
	fmt.Fprintf(out, "[%s] %s\n", appName, printer.Sprintf(messages.LogSaveSuccess, outputPath))
	return nil
}

// runChain は2ボーン間のチェーンを表示する。シーンは保存しない。
func runChain(opts options, out io.Writer, errOut io.Writer) error {
	printer, loaded, err := prepare(opts, errOut)
	if err != nil {
		return err
	}
	if len(opts.boneNames) != chainEndpoints {
		return errors.New(printer.Sprintf(messages.MessageChainEndpoints))
	}
	armature, err := loaded.ActiveArmature(opts.armatureName)
	if err != nil {
		return err
	}
	chain, err := newUsecase(opts, loaded).ResolveChain(armature, opts.boneNames[0], opts.boneNames[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "[%s] %s\n", appName, printer.Sprintf(messages.MessageChainResolved, strings.Join(chain, " -> ")))
	return nil
}

// prepare はロガーを設定してシーンを読み込む。
func prepare(opts options, errOut io.Writer) (*message.Printer, *mhost.Scene, error) {
	printer := messages.NewPrinter(opts.lang)
	if _, err := mlogging.Setup(errOut, opts.logLevel); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(opts.inputPath) == "" {
		return nil, nil, fmt.Errorf("%s (--in)", printer.Sprintf(messages.MessageInputRequired))
	}
	loaded, err := scene.NewSceneRepository().Load(opts.inputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("シーン読み込みに失敗しました: %w", err)
	}
	slog.Info(printer.Sprintf(messages.LogLoadSuccess, opts.inputPath))
	return printer, loaded, nil
}

// newUsecase はシーンをホストとするリグ構築ユースケースを生成する。
func newUsecase(opts options, host *mhost.Scene) *minteractor.RigUsecase {
	return minteractor.NewRigUsecase(minteractor.RigUsecaseDeps{
		Host:             host,
		ProgressReporter: progressLogger{},
		TargetPrefix:     opts.targetPrefix,
		ControlLayerName: opts.controlLayer,
	})
}

// progressLogger は進捗イベントをデバッグログへ出力する。
type progressLogger struct{}

// ReportRigProgress は進捗イベントをログへ出力する。
func (progressLogger) ReportRigProgress(event minteractor.RigProgressEvent) {
	slog.Debug("リグ構築進捗",
		"type", string(event.Type),
		"procedure", string(event.Procedure),
		"chain", event.ChainLength,
		"bones", event.BoneCount,
		"constraints", event.ConstraintCount,
	)
}

// resolveOutputPath は出力YAMLパスを解決する。
func resolveOutputPath(inputPath string, outputPath string) (string, error) {
	if strings.TrimSpace(outputPath) == "" {
		dir := filepath.Dir(inputPath)
		ext := filepath.Ext(inputPath)
		base := strings.TrimSuffix(filepath.Base(inputPath), ext)
		return filepath.Join(dir, base+outputSuffix+ext), nil
	}
	if !scene.NewSceneRepository().CanLoad(outputPath) {
		return "", fmt.Errorf("出力拡張子が .yaml ではありません: %s", outputPath)
	}
	return outputPath, nil
}
