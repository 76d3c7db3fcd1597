package main

import "github.com/Thooms-coder/Shibui-Planner/internal/app"

// @title           Shibui Planner API
// @version         1.0
// @description     Personal Flow/Motion planner: task catalog, scheduling, mood feedback and balance reports.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @BasePath /
func main() {
	app.Run()
}
