package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"adminpro/console/internal/api"
	"adminpro/console/internal/models"
)

func (a *app) centresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "centres",
		Short: "Manage inspection centres",
	}

	var (
		query string
		page  int
		limit int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List inspection centres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			centres, err := a.api.ListCentres(cmd.Context())
			if err != nil {
				return err
			}
			if query != "" {
				q := strings.ToLower(query)
				centres = api.Filter(centres, func(c api.InspectionCentre) bool {
					return strings.Contains(strings.ToLower(c.Name), q) ||
						strings.Contains(strings.ToLower(c.City), q)
				})
			}
			return printJSON(api.Paginate(centres, page, limit))
		},
	}
	list.Flags().StringVar(&query, "q", "", "filter by name or city")
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&limit, "limit", 20, "page size")

	var update api.CentreUpdate
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an inspection centre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			centre, err := a.api.UpdateCentre(cmd.Context(), args[0], update)
			if err != nil {
				return err
			}
			return printJSON(centre)
		},
	}
	updateCmd.Flags().StringVar(&update.Name, "name", "", "centre name")
	updateCmd.Flags().StringVar(&update.Address, "address", "", "street address")
	updateCmd.Flags().IntVar(&update.CityID, "city-id", 0, "city id")
	updateCmd.Flags().IntVar(&update.Capacity, "capacity", 0, "daily inspection capacity")
	updateCmd.Flags().BoolVar(&update.Active, "active", true, "centre accepts bookings")

	var cityQuery api.CitySuggestionQuery
	cities := &cobra.Command{
		Use:   "cities",
		Short: "Suggest cities for the centre form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			suggestions, err := a.api.CitySuggestions(cmd.Context(), cityQuery)
			if err != nil {
				return err
			}
			return printJSON(suggestions)
		},
	}
	cities.Flags().StringVar(&cityQuery.Q, "q", "", "search text")
	cities.Flags().IntVar(&cityQuery.Page, "page", 1, "page number")
	cities.Flags().IntVar(&cityQuery.Limit, "limit", 10, "page size")
	cities.Flags().IntVar(&cityQuery.CityID, "city-id", 0, "resolve a known city id")

	cmd.AddCommand(list, updateCmd, cities)
	return cmd
}

func (a *app) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage managers, inspectors and staff",
	}

	var in api.CreateUserInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user; role is discriminated by --role-id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.api.CreateUser(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(user)
		},
	}
	create.Flags().StringVar(&in.Name, "name", "", "full name")
	create.Flags().StringVar(&in.Email, "email", "", "email address")
	create.Flags().StringVar(&in.Phone, "phone", "", "mobile number")
	create.Flags().IntVar(&in.RoleID, "role-id", 0, "numeric role")
	create.Flags().StringVar(&in.ManagerID, "manager-id", "", "assigned manager")
	create.Flags().StringVar(&in.CentreID, "centre-id", "", "home inspection centre")
	create.MarkFlagRequired("name")
	create.MarkFlagRequired("role-id")

	var roleID int
	list := &cobra.Command{
		Use:   "list",
		Short: "List users, optionally by role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.api.ListUsers(cmd.Context(), roleID)
			if err != nil {
				return err
			}
			return printJSON(users)
		},
	}
	list.Flags().IntVar(&roleID, "role-id", 0, "filter by numeric role")

	inspectors := &cobra.Command{
		Use:   "inspectors <manager-id>",
		Short: "List the inspectors assigned to a manager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.api.InspectorsByManager(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(users)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("deleted", args[0])
			return nil
		},
	}

	cmd.AddCommand(create, list, inspectors, deleteCmd)
	return cmd
}

func (a *app) carsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cars",
		Short: "Manage marketplace cars",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cars, err := a.api.ListCars(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cars)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a car",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api.DeleteCar(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("deleted", args[0])
			return nil
		},
	})
	return cmd
}

func (a *app) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage products",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.api.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(products)
		},
	})
	return cmd
}

func (a *app) notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Manage notifications",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notifications, err := a.api.ListNotifications(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(notifications)
		},
	})
	return cmd
}

func (a *app) docsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "KYC document verification status",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the stored document status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.keys.ReadDocumentStatus(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%d (%s)\n", int(status), status)
			return nil
		},
	})

	var status int
	set := &cobra.Command{
		Use:   "set",
		Short: "Record a backend-reported document status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.keys.WriteDocumentStatus(cmd.Context(), models.DocumentStatus(status))
		},
	}
	set.Flags().IntVar(&status, "status", 0, "1 pending, 2 under review, 3 verified, 4 rejected")
	set.MarkFlagRequired("status")

	cmd.AddCommand(set)
	return cmd
}
