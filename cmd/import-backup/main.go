// import-backup sube un dump JSON exportado desde /backup/export a una
// instancia corriendo del servicio.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"livestock-registry/internal/platform/httpclient"
)

func main() {
	var (
		file = flag.String("file", "", "ruta al dump JSON")
		api  = flag.String("api", "http://localhost:8080", "URL base del servicio")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "uso: import-backup -file backup.json [-api http://host:puerto]")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "no se pudo leer %s: %v\n", *file, err)
		os.Exit(1)
	}

	var dump json.RawMessage
	if err := json.Unmarshal(raw, &dump); err != nil {
		fmt.Fprintf(os.Stderr, "%s no es JSON válido: %v\n", *file, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := httpclient.NewWithBaseURL(*api, 60*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "URL base inválida: %v\n", err)
		os.Exit(1)
	}

	var summary map[string]any
	if err := client.DoJSON(ctx, http.MethodPost, "/backup/import", dump, &summary); err != nil {
		fmt.Fprintf(os.Stderr, "import falló: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}
