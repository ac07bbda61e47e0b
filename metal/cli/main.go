package main

import (
	"context"

	"github.com/webfolio/api/database"
	"github.com/webfolio/api/database/backup"
	"github.com/webfolio/api/metal/cli/accounts"
	"github.com/webfolio/api/metal/cli/panel"
	"github.com/webfolio/api/metal/env"
	"github.com/webfolio/api/metal/kernel"
	"github.com/webfolio/api/pkg/cli"
	"github.com/webfolio/api/pkg/portal"
)

var environment *env.Environment
var dbConn *database.Connection

func init() {
	secrets, err := kernel.Ignite("./.env", portal.GetDefaultValidator())
	if err != nil {
		panic("bootstrapping error > " + err.Error())
	}

	environment = secrets
	dbConn = kernel.MakeDbConnection(environment)
}

func main() {
	defer dbConn.Close()

	cli.ClearScreen()

	menu := panel.MakeMenu()

	for {
		err := menu.CaptureInput()

		if err != nil {
			cli.Errorln(err.Error())
			continue
		}

		switch menu.GetChoice() {
		case 1:
			if err = createAdminAccount(menu); err != nil {
				cli.Errorln(err.Error())
				continue
			}

			return
		case 2:
			if err = runBackupNow(); err != nil {
				cli.Errorln(err.Error())
				continue
			}

			return
		case 3:
			if err = truncateDatabase(menu); err != nil {
				cli.Errorln(err.Error())
				continue
			}

			return
		case 0:
			cli.Successln("Goodbye!")
			return
		default:
			cli.Errorln("Unknown option. Try again.")
		}

		cli.Blueln("Press Enter to continue...")

		menu.PrintLine()
	}
}

func createAdminAccount(menu panel.Menu) error {
	username, err := menu.CaptureText("Enter the admin username: ")
	if err != nil {
		return err
	}

	email, err := menu.CaptureText("Enter the admin email: ")
	if err != nil {
		return err
	}

	password, err := menu.CapturePassword("Enter the admin password: ")
	if err != nil {
		return err
	}

	handler, err := accounts.MakeHandler(dbConn, environment)
	if err != nil {
		return err
	}

	return handler.CreateAdmin(username, email, password)
}

func truncateDatabase(menu panel.Menu) error {
	confirm, err := menu.CaptureText("Type 'yes' to wipe every table: ")
	if err != nil {
		return err
	}

	if confirm != "yes" {
		cli.Blueln("Aborted.")
		return nil
	}

	if err = database.MakeTruncate(dbConn, environment).Execute(); err != nil {
		return err
	}

	cli.Successln("\n  The database was truncated.")

	return nil
}

func runBackupNow() error {
	scheduler, err := backup.NewScheduler(environment)
	if err != nil {
		return err
	}

	if err = scheduler.Run(context.Background()); err != nil {
		return err
	}

	cli.Successln("\n  The database backup completed successfully.")

	return nil
}
