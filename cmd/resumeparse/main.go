// Command resumeparse runs the extraction pipeline on local files.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumeparse",
	Short: "Parse resume files into structured JSON",
	Long:  "resumeparse decodes PDF, DOCX, DOC or TXT resumes and prints the structured record the API would store.",
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
