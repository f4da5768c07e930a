package main

import "github.com/jhoicas/inventario-analitica/internal/interfaces/cli"

func main() {
	cli.Execute()
}
