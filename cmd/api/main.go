package main

import "vetco/cmd/api/commands"

// @title VETCO API
// @version 1.0
// @description API de registros ganaderos: cuentas por rol, animales e historial sanitario.
// @BasePath /
func main() {
	commands.Execute()
}
