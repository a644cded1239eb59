package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(&client{HTTP: &http.Client{Timeout: 30 * time.Second}, Out: os.Stdout}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd(cl *client) *cobra.Command {
	var (
		baseURL = envOr("BESTSELLER_API_URL", "http://localhost:5000")
		token   = envOr("BESTSELLER_TOKEN", "")
		out     = envOr("BESTSELLER_OUT", "text")
	)

	root := &cobra.Command{
		Use:           "bestsellerctl",
		Short:         "CLI admin para el marketplace (vía API HTTP)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cl.BaseURL, cl.Token, cl.OutFormat = baseURL, token, out
		},
	}
	root.PersistentFlags().StringVar(&baseURL, "api-url", baseURL, "URL base de la API (env BESTSELLER_API_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "Bearer token de un Admin (env BESTSELLER_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	// requiere token
	needToken := func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(cl.Token) == "" {
			return fmt.Errorf("falta token (flag --token o env BESTSELLER_TOKEN)")
		}
		return nil
	}

	// login: PUT /user/{email} e imprime el token emitido
	var loginRole string
	loginCmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Upsert del usuario y obtención de token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{"email": args[0]}
			if loginRole != "" {
				body["role"] = loginRole
			}
			return cl.call("login", http.MethodPut, "/user/"+url.PathEscape(args[0]), body)
		},
	}
	loginCmd.Flags().StringVar(&loginRole, "role", "", "Rol a guardar en el upsert (Buyer|Seller|Admin)")

	// users
	usersCmd := &cobra.Command{Use: "users", Short: "Operaciones sobre usuarios"}

	sellersCmd := &cobra.Command{
		Use:     "sellers",
		Short:   "Listar sellers",
		PreRunE: needToken,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.call("sellers", http.MethodGet, "/all-sellers", nil)
		},
	}
	buyersCmd := &cobra.Command{
		Use:   "buyers",
		Short: "Listar buyers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.call("buyers", http.MethodGet, "/all-buyers", nil)
		},
	}
	verifyCmd := &cobra.Command{
		Use:     "verify <id>",
		Short:   "Marcar un usuario como verificado",
		Args:    cobra.ExactArgs(1),
		PreRunE: needToken,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.call("verify", http.MethodPut, "/verified/"+url.PathEscape(args[0]), nil)
		},
	}
	deleteCmd := &cobra.Command{
		Use:     "delete <id>",
		Short:   "Borrar un usuario",
		Args:    cobra.ExactArgs(1),
		PreRunE: needToken,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.call("delete", http.MethodDelete, "/delete-user/"+url.PathEscape(args[0]), nil)
		},
	}
	setRoleCmd := &cobra.Command{
		Use:   "set-role <email> <Buyer|Seller|Admin>",
		Short: "Cambiar el rol de un usuario",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.call("set-role", http.MethodPut, "/user/type/"+url.PathEscape(args[0]), map[string]any{"role": args[1]})
		},
	}
	usersCmd.AddCommand(sellersCmd, buyersCmd, verifyCmd, deleteCmd, setRoleCmd)

	// products
	productsCmd := &cobra.Command{Use: "products", Short: "Operaciones sobre productos"}
	reportedCmd := &cobra.Command{
		Use:     "reported",
		Short:   "Listar productos reportados",
		PreRunE: needToken,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.call("reported", http.MethodGet, "/all-report", nil)
		},
	}
	productsCmd.AddCommand(reportedCmd)

	// ping: GET /readyz
	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Verificar que la API y el store respondan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.call("ping", http.MethodGet, "/readyz", nil)
		},
	}

	root.AddCommand(loginCmd, usersCmd, productsCmd, pingCmd)
	return root
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
