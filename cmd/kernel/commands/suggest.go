package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/payload"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/scheduler"
)

type suggestOutput struct {
	*scheduler.Result
	IgnoredRules []string `json:"ignoredRules"`
}

func SuggestCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <file>",
		Short: "为待分配班次生成排班建议",
		Long:  "为待分配班次生成排班建议。指定 --proposal 时不再自动排班，而是校验外部给出的分配方案。",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proposalFile, _ := cmd.Flags().GetString("proposal")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			budget, _ := cmd.Flags().GetInt("max-evaluations")

			var req payload.SuggestRequest
			if err := app.readRequest(cmd, args[0], &req); err != nil {
				return err
			}

			p, ignored, err := app.Policy.ApplyRules(req.Rules)
			if err != nil {
				return err
			}

			var strategy scheduler.Scheduler = scheduler.New(&scheduler.Parameters{MaxCandidateEvaluations: budget})
			if proposalFile != "" {
				var proposal payload.ProposalRequest
				if err := app.readRequest(cmd, proposalFile, &proposal); err != nil {
					return err
				}
				strategy = &scheduler.Preset{Assignments: proposal.Domain()}
			}

			ctx, cancel := context.WithTimeout(app.Ctx, timeout)
			defer cancel()

			employees, shifts := req.Domain()
			result, err := scheduler.Optimize(ctx, strategy, scheduler.Request{
				Employees:  employees,
				OpenShifts: shifts,
				Policy:     p,
			})
			if err != nil {
				return err
			}

			return writeResult(cmd, suggestOutput{Result: result, IgnoredRules: ignored})
		},
	}

	cmd.Flags().String("proposal", "", "外部给出的分配方案 JSON 文件，格式为 {\"suggestion\": [...]}")
	cmd.Flags().Duration("timeout", 30*time.Second, "排班超时时间")
	cmd.Flags().Int("max-evaluations", 100000, "候选评估次数上限，0 表示不限制")

	return cmd
}
