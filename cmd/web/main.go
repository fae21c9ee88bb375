// @title           iwork API
// @version         1.0
// @description     Company review and salary transparency platform API.
// @host            localhost:4000
// @BasePath        /

package main

import "iwork_backend/internal/app"

func main() {
	app.Run()
}
