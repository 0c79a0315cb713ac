package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarmaya-dev/sarmaya/internal/id"
	"github.com/sarmaya-dev/sarmaya/internal/model"
	"github.com/sarmaya-dev/sarmaya/internal/validate"
)

func newCustomerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}

	cmd.AddCommand(newCustomerAddCommand())
	cmd.AddCommand(newCustomerListCommand())
	cmd.AddCommand(newCustomerEditCommand())
	cmd.AddCommand(newCustomerDeleteCommand())

	return cmd
}

func newCustomerAddCommand() *cobra.Command {
	var name, cnic, email, address, phone string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}

			c := model.Customer{
				ID:      id.New(),
				Name:    name,
				CNIC:    cnic,
				Email:   email,
				Address: address,
				Phone:   phone,
			}
			if !s.AddCustomer(c) {
				return fmt.Errorf("rejected: check name, CNIC, phone and email")
			}

			fmt.Printf("Added customer %s (%s)\n", c.ID, c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "customer name (required)")
	cmd.Flags().StringVar(&cnic, "cnic", "", "13-digit CNIC (required)")
	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&address, "address", "", "postal address")
	cmd.Flags().StringVar(&phone, "phone", "", "mobile number, 03xxxxxxxxx (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("cnic")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

func newCustomerListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}

			for _, c := range s.Customers() {
				fmt.Printf("%s  %-30s %s  %s\n", c.ID, c.Name, validate.FormatCNIC(c.CNIC), c.Phone)
			}
			return nil
		},
	}
}

func newCustomerEditCommand() *cobra.Command {
	var name, cnic, email, address, phone string

	cmd := &cobra.Command{
		Use:   "edit <customer-id>",
		Short: "Update a customer's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !id.Valid(args[0]) {
				return fmt.Errorf("malformed customer id %q", args[0])
			}

			s, err := openStore()
			if err != nil {
				return err
			}

			if !s.EditCustomer(args[0], name, cnic, email, address, phone) {
				return fmt.Errorf("edit rejected: unknown customer or invalid details")
			}

			fmt.Printf("Updated customer %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "customer name (required)")
	cmd.Flags().StringVar(&cnic, "cnic", "", "13-digit CNIC (required)")
	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&address, "address", "", "postal address")
	cmd.Flags().StringVar(&phone, "phone", "", "mobile number (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("cnic")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

func newCustomerDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <customer-id>",
		Short: "Delete a customer (their loans and payments remain)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !id.Valid(args[0]) {
				return fmt.Errorf("malformed customer id %q", args[0])
			}

			s, err := openStore()
			if err != nil {
				return err
			}

			if !s.DeleteCustomer(args[0]) {
				return fmt.Errorf("unknown customer %s", args[0])
			}

			fmt.Printf("Deleted customer %s\n", args[0])
			return nil
		},
	}
}
