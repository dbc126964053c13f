package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/payload"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/policy"
)

// AppContext 保存各个子命令共用的依赖
type AppContext struct {
	Policy     policy.Policy
	Validate   *validator.Validate
	Translator ut.Translator
	Ctx        context.Context
}

func RootCmd(app *AppContext) *cobra.Command {
	var policyFile string
	var timeZone string

	root := &cobra.Command{
		Use:           "kernel",
		Short:         "离线运行排班校验、成本计算和排班建议",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p := policy.Default()
			if policyFile != "" {
				loaded, err := policy.LoadFromPath(policyFile)
				if err != nil {
					return err
				}
				p = loaded
			}
			if timeZone != "" {
				p.TimeZone = timeZone
				if err := p.Validate(); err != nil {
					return err
				}
			}
			app.Policy = p

			validate, trans, err := payload.NewValidator()
			if err != nil {
				return err
			}
			app.Validate = validate
			app.Translator = trans
			return nil
		},
	}

	root.PersistentFlags().StringVar(&policyFile, "policy", "", "劳动法策略 YAML 文件")
	root.PersistentFlags().StringVar(&timeZone, "time-zone", "", "覆盖策略中的时区")

	root.AddCommand(ValidateCmd(app), CostCmd(app), SuggestCmd(app))
	return root
}

// readRequest 从文件读取请求并校验，路径为 - 时读取标准输入
func (app *AppContext) readRequest(cmd *cobra.Command, path string, v any) error {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("无法打开文件: %w", err)
		}
		defer file.Close()
		r = file
	}

	if err := payload.Decode(r, v); err != nil {
		return err
	}
	return payload.Check(app.Validate, app.Translator, v)
}

func writeResult(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
