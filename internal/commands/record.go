package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eeandrelle/tally/internal/auditlog"
	"github.com/eeandrelle/tally/internal/model"
	"github.com/eeandrelle/tally/internal/records"
)

func newRecordCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Add category deduction records",
	}
	cmd.AddCommand(
		newRecordDonationCommand(opts),
		newRecordSuperCommand(opts),
		newRecordUPPCommand(opts),
		newRecordExpenseCommand(opts),
		newRecordCourseCommand(opts),
		newRecordEducationAssetCommand(opts),
	)
	return cmd
}

// saveRecordSet persists an updated record set and logs the addition.
func saveRecordSet(cmd *cobra.Command, p *project, rs model.RecordSet, category model.AtoCategory, id, details string) error {
	if err := p.saveRecords(cmd.Context(), rs); err != nil {
		return err
	}
	p.audit(auditlog.ActionAddRecord, string(category), id, details)
	fmt.Printf("Recorded %s %s (%s)\n", model.CategoryLabels[category], id, details)
	return nil
}

func newRecordDonationCommand(opts *rootOptions) *cobra.Command {
	var date, organisation, amount string
	var dgr, receipt bool

	cmd := &cobra.Command{
		Use:   "donation",
		Short: "Record a gift or donation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			d := model.Donation{Organisation: organisation, DGRStatus: dgr, ReceiptHeld: receipt}
			if d.Amount, err = parseAmount("amount", amount); err != nil {
				return err
			}
			if d.Date, err = parseDate(date); err != nil {
				return err
			}

			rs, err := p.loadRecords(cmd.Context())
			if err != nil {
				return err
			}
			rs = records.AddDonation(rs, d)

			added := rs.Donations[len(rs.Donations)-1]
			return saveRecordSet(cmd, p, rs, model.CategoryDonations, added.ID,
				fmt.Sprintf("%s $%s", organisation, added.Amount.StringFixed(2)))
		},
	}

	cmd.Flags().StringVar(&organisation, "org", "", "recipient organisation (required)")
	_ = cmd.MarkFlagRequired("org")
	cmd.Flags().StringVar(&amount, "amount", "", "gift amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&date, "date", "", "gift date YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&dgr, "dgr", false, "recipient has deductible gift recipient status")
	cmd.Flags().BoolVar(&receipt, "receipt", false, "receipt held")

	return cmd
}

func newRecordSuperCommand(opts *rootOptions) *cobra.Command {
	var date, fund, amount string
	var notice, acknowledged bool

	cmd := &cobra.Command{
		Use:   "super",
		Short: "Record a personal super contribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			c := model.SuperContribution{Fund: fund, NoticeSubmitted: notice, AcknowledgmentReceived: acknowledged}
			if c.Amount, err = parseAmount("amount", amount); err != nil {
				return err
			}
			if c.Date, err = parseDate(date); err != nil {
				return err
			}

			rs, err := p.loadRecords(cmd.Context())
			if err != nil {
				return err
			}
			rs = records.AddSuperContribution(rs, c)

			added := rs.SuperContribs[len(rs.SuperContribs)-1]
			return saveRecordSet(cmd, p, rs, model.CategorySuper, added.ID,
				fmt.Sprintf("%s $%s", fund, added.Amount.StringFixed(2)))
		},
	}

	cmd.Flags().StringVar(&fund, "fund", "", "super fund name (required)")
	_ = cmd.MarkFlagRequired("fund")
	cmd.Flags().StringVar(&amount, "amount", "", "contribution amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&date, "date", "", "contribution date YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&notice, "notice", false, "notice of intent submitted")
	cmd.Flags().BoolVar(&acknowledged, "acknowledged", false, "fund acknowledgment received")

	return cmd
}

func newRecordUPPCommand(opts *rootOptions) *cobra.Command {
	var description, gross, deductible string

	cmd := &cobra.Command{
		Use:   "upp",
		Short: "Record a foreign pension UPP entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			e := model.UPPEntry{Description: description}
			if e.GrossPayment, err = parseAmount("gross payment", gross); err != nil {
				return err
			}
			if e.DeductibleAmount, err = parseAmount("deductible amount", deductible); err != nil {
				return err
			}

			rs, err := p.loadRecords(cmd.Context())
			if err != nil {
				return err
			}
			rs = records.AddUPPEntry(rs, e)

			added := rs.UPPEntries[len(rs.UPPEntries)-1]
			return saveRecordSet(cmd, p, rs, model.CategoryUPP, added.ID,
				fmt.Sprintf("%s $%s", description, added.DeductibleAmount.StringFixed(2)))
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "pension or annuity description (required)")
	_ = cmd.MarkFlagRequired("description")
	cmd.Flags().StringVar(&gross, "gross", "", "gross payment received (required)")
	_ = cmd.MarkFlagRequired("gross")
	cmd.Flags().StringVar(&deductible, "deductible", "", "pre-apportioned deductible amount (required)")
	_ = cmd.MarkFlagRequired("deductible")

	return cmd
}

func newRecordExpenseCommand(opts *rootOptions) *cobra.Command {
	var description, category, amount, workPct, privatePct, courseID string

	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record a self-education expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			e := model.EducationExpense{
				Description: description,
				Category:    model.ExpenseCategory(category),
				CourseID:    courseID,
			}
			if e.Amount, err = parseAmount("amount", amount); err != nil {
				return err
			}
			if e.WorkRelatedPct, err = parseAmount("work-related percentage", workPct); err != nil {
				return err
			}
			if e.PrivateUsePct, err = parseAmount("private-use percentage", privatePct); err != nil {
				return err
			}

			rs, err := p.loadRecords(cmd.Context())
			if err != nil {
				return err
			}
			rs = records.AddEducationExpense(rs, e)

			added := rs.EducationExpenses[len(rs.EducationExpenses)-1]
			return saveRecordSet(cmd, p, rs, model.CategorySelfEducation, added.ID,
				fmt.Sprintf("%s $%s", description, added.Amount.StringFixed(2)))
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "expense description (required)")
	_ = cmd.MarkFlagRequired("description")
	cmd.Flags().StringVar(&category, "category", string(model.ExpenseOther),
		"expense category: course-fees, textbooks, stationery, travel, other")
	cmd.Flags().StringVar(&amount, "amount", "", "expense amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&workPct, "work-pct", "100", "work-related percentage")
	cmd.Flags().StringVar(&privatePct, "private-pct", "0", "private-use percentage")
	cmd.Flags().StringVar(&courseID, "course", "", "course ID this expense belongs to")

	return cmd
}

func newRecordCourseCommand(opts *rootOptions) *cobra.Command {
	var name, provider string

	cmd := &cobra.Command{
		Use:   "course",
		Short: "Record a self-education course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			rs, err := p.loadRecords(cmd.Context())
			if err != nil {
				return err
			}
			rs = records.AddCourse(rs, model.Course{Name: name, Provider: provider})

			added := rs.Courses[len(rs.Courses)-1]
			return saveRecordSet(cmd, p, rs, model.CategorySelfEducation, added.ID,
				fmt.Sprintf("course %s (%s)", name, provider))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "course name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&provider, "provider", "", "course provider")

	return cmd
}

func newRecordEducationAssetCommand(opts *rootOptions) *cobra.Command {
	var description, cost, openingBalance, method, usePct string
	var life int

	cmd := &cobra.Command{
		Use:   "edasset",
		Short: "Record a depreciating self-education asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			a := model.EducationAsset{
				Description:        description,
				EffectiveLifeYears: life,
				Method:             model.DepreciationMethod(method),
			}
			if a.Cost, err = parseAmount("cost", cost); err != nil {
				return err
			}
			if a.BusinessUsePct, err = parseAmount("business-use percentage", usePct); err != nil {
				return err
			}
			if openingBalance != "" {
				if a.OpeningBalance, err = parseAmount("opening balance", openingBalance); err != nil {
					return err
				}
			}

			rs, err := p.loadRecords(cmd.Context())
			if err != nil {
				return err
			}
			rs = records.AddEducationAsset(rs, a)

			added := rs.EducationAssets[len(rs.EducationAssets)-1]
			return saveRecordSet(cmd, p, rs, model.CategorySelfEducation, added.ID,
				fmt.Sprintf("%s $%s", description, added.Cost.StringFixed(2)))
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "asset description (required)")
	_ = cmd.MarkFlagRequired("description")
	cmd.Flags().StringVar(&cost, "cost", "", "asset cost (required)")
	_ = cmd.MarkFlagRequired("cost")
	cmd.Flags().IntVar(&life, "life", 0, "effective life in years (required)")
	_ = cmd.MarkFlagRequired("life")
	cmd.Flags().StringVar(&method, "method", string(model.MethodDiminishingValue),
		"depreciation method: diminishing-value, prime-cost")
	cmd.Flags().StringVar(&usePct, "use-pct", "100", "business-use percentage")
	cmd.Flags().StringVar(&openingBalance, "opening-balance", "", "carried-forward opening balance")

	return cmd
}
