// Package commands provides CLI commands for the admin tool
package commands

import (
	"context"
	"fmt"

	"kingsadvice/internal/models"
	"kingsadvice/internal/observability"
	serviceinterfaces "kingsadvice/internal/services/interfaces"
	contextutils "kingsadvice/internal/utils"

	"github.com/spf13/cobra"
)

// starterQuestions is the catalog installed by "questions seed". Entries that
// already exist are left untouched.
var starterQuestions = []models.BasicQuestionInput{
	{
		Topic:    "market-entry",
		Answer:   "Start with a small, well-defined segment where your offering has a clear edge. Validate demand with a pilot before committing to distribution or hiring, and set explicit exit criteria so a failed entry stays cheap.",
	},
	{
		Topic:    "pricing",
		Answer:   "Anchor on the value delivered to the customer rather than your costs. Interview a handful of target buyers about what they pay for alternatives, pick a price above the midpoint of that range, and adjust based on win rates rather than gut feel.",
	},
	{
		Topic:    "hiring",
		Answer:   "Only after a founder has closed repeatable deals personally. A salesperson scales a working process, they do not invent one. Write down your current pitch, objections, and close steps first so the hire has a playbook to execute.",
	},
	{
		Topic:    "fundraising",
		Answer:   "Raise only if capital is the binding constraint on growth. If the business can reach profitability on revenue, bootstrapping keeps your options open. If winner-take-most dynamics apply in your market, speed matters more than dilution.",
	},
	{
		Topic:    "cost-cutting",
		Answer:   "Rank every recurring expense by its contribution to revenue, then cut from the bottom. Renegotiate the top vendor contracts before touching headcount, and avoid across-the-board percentage cuts, which punish your best-performing functions.",
	},
}

// QuestionCommands returns the canned question catalog commands
func QuestionCommands(requestService serviceinterfaces.RequestService, logger *observability.Logger) *cobra.Command {
	questionsCmd := &cobra.Command{
		Use:   "questions",
		Short: "Canned question catalog commands",
		Long: `Canned question catalog commands for the advice backend.

Available commands:
  seed  - Install the starter catalog of canned topics
  list  - List the current catalog entries`,
	}

	questionsCmd.AddCommand(seedQuestionsCmd(requestService, logger))
	questionsCmd.AddCommand(listQuestionsCmd(requestService, logger))

	return questionsCmd
}

// seedQuestionsCmd returns the seed command
func seedQuestionsCmd(requestService serviceinterfaces.RequestService, logger *observability.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install the starter catalog of canned topics",
		Long:  `Install the starter catalog of canned consulting topics. Topics that already exist are skipped, so the command is safe to re-run.`,
		RunE:  runSeedQuestions(requestService, logger),
	}
}

// listQuestionsCmd returns the list command
func listQuestionsCmd(requestService serviceinterfaces.RequestService, logger *observability.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the current catalog entries",
		RunE:  runListQuestions(requestService, logger),
	}
}

// runSeedQuestions returns a function that seeds the canned catalog
func runSeedQuestions(requestService serviceinterfaces.RequestService, logger *observability.Logger) func(cmd *cobra.Command, args []string) error {
	return func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()

		created, skipped := 0, 0
		for i := range starterQuestions {
			input := starterQuestions[i]
			_, err := requestService.CreateBasicQuestion(ctx, &input)
			if contextutils.IsError(err, contextutils.ErrRecordExists) {
				skipped++
				continue
			}
			if err != nil {
				logger.Error(ctx, "Failed to seed catalog entry", err, map[string]interface{}{"topic": input.Topic})
				return contextutils.WrapErrorf(err, "failed to seed catalog entry %q", input.Topic)
			}
			created++
		}

		fmt.Printf("Seeded catalog: %d created, %d already present\n", created, skipped)
		logger.Info(ctx, "Seeded canned question catalog", map[string]interface{}{"created": created, "skipped": skipped})

		return nil
	}
}

// runListQuestions returns a function that prints the canned catalog
func runListQuestions(requestService serviceinterfaces.RequestService, logger *observability.Logger) func(cmd *cobra.Command, args []string) error {
	return func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()

		questions, err := requestService.GetAllBasicQuestions(ctx)
		if err != nil {
			logger.Error(ctx, "Failed to list catalog entries", err, map[string]interface{}{})
			return contextutils.WrapErrorf(err, "failed to list catalog entries")
		}

		if len(questions) == 0 {
			fmt.Println("Catalog is empty. Run 'adm questions seed' to install the starter topics.")
			return nil
		}

		for _, q := range questions {
			fmt.Printf("%s\t%s\t%s\n", q.ID, q.Topic, q.Answer)
		}

		return nil
	}
}
