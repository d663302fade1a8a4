package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/cinemadrums/spap"
	"github.com/cinemadrums/spap/analytics"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	store   spap.Store
	weights analytics.Weights
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addstudent -email EMAIL -id STUDENTID - create a student account")
	fmt.Println("  resetpassword -email EMAIL            - reset a student's password")
	fmt.Println("  deletestudent -email EMAIL            - delete a student and all their data")
	fmt.Println("  students                              - list student accounts")
	fmt.Println("  report -email EMAIL                   - print a student's productivity report")
	fmt.Println("  wipe                                  - remove every student from the data file")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	addStudentEmail := addStudentCmd.String("email", "", "The student's email. The password will be prompted next.")
	addStudentID := addStudentCmd.String("id", "", "The student's campus ID.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The student's email. The password will be prompted next.")

	deleteStudentCmd := flag.NewFlagSet("deletestudent", flag.ExitOnError)
	deleteStudentEmail := deleteStudentCmd.String("email", "", "The student's email.")

	reportCmd := flag.NewFlagSet("report", flag.ExitOnError)
	reportEmail := reportCmd.String("email", "", "The student's email.")

	switch args[1] {
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStudentEmail == "" || *addStudentID == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword(addStudentCmd)
		if err != nil {
			return err
		}
		return cli.addStudent(*addStudentEmail, *addStudentID, pwd)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword(resetPasswordCmd)
		if err != nil {
			return err
		}
		return cli.resetPassword(*resetPasswordEmail, pwd)
	case "deletestudent":
		if err := deleteStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *deleteStudentEmail == "" {
			deleteStudentCmd.Usage()
			return errHelp
		}
		return cli.store.DeleteStudent(spap.CleanString(*deleteStudentEmail, true))
	case "students":
		return cli.listStudents()
	case "wipe":
		return cli.wipe()
	case "report":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *reportEmail == "" {
			reportCmd.Usage()
			return errHelp
		}
		return cli.report(*reportEmail)
	default:
		cli.printUsage()
		return errHelp
	}
}

func promptPassword(cmd *flag.FlagSet) (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		cmd.Usage()
		return "", errHelp
	}
	return string(pwd), nil
}
