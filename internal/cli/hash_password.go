package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/mediateca/internal/auth"
)

// HashPasswordCommand prints a bcrypt hash for AUTH_ADMIN_PASSWORD_HASH.
type HashPasswordCommand struct {
	Cost  int
	Input io.Reader
}

func NewHashPasswordCommand(cost int) *HashPasswordCommand {
	return &HashPasswordCommand{Cost: cost, Input: os.Stdin}
}

func (cmd *HashPasswordCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)

	fs.IntVar(&cmd.Cost, "cost", cmd.Cost, "bcrypt cost factor")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s hash-password [options] < password.txt\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Read a password from stdin and print its bcrypt hash.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  export AUTH_ADMIN_PASSWORD_HASH=$(echo -n 'una-contraseña-larga' | %s hash-password)\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *HashPasswordCommand) Run() error {
	hash, err := cmd.hash()
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func (cmd *HashPasswordCommand) hash() (string, error) {
	line, err := bufio.NewReader(cmd.Input).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}
	return auth.HashPassword(password, cmd.Cost)
}
