package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/compliance"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/cost"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/payload"
)

var ErrScheduleInvalid = errors.New("排班存在高严重性违规")

func ValidateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "校验排班是否符合劳动法约束",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")

			var req payload.ScheduleRequest
			if err := app.readRequest(cmd, args[0], &req); err != nil {
				return err
			}

			shifts, employees := req.Domain()
			result, err := compliance.Validate(shifts, employees, app.Policy)
			if err != nil {
				return err
			}
			if err := writeResult(cmd, result); err != nil {
				return err
			}

			if strict && !result.IsValid {
				return ErrScheduleInvalid
			}
			return nil
		},
	}

	cmd.Flags().Bool("strict", false, "存在高严重性违规时以非零状态退出")

	return cmd
}

func CostCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cost <file>",
		Short: "计算排班的人力成本",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req payload.ScheduleRequest
			if err := app.readRequest(cmd, args[0], &req); err != nil {
				return err
			}

			shifts, employees := req.Domain()
			result, err := cost.Calculate(shifts, employees, app.Policy)
			if err != nil {
				return err
			}
			return writeResult(cmd, result)
		},
	}
}
