package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campussphere_backend/internals/configs"
	adminRoute "campussphere_backend/internals/features/admin/route"
	alumniRoute "campussphere_backend/internals/features/alumni/route"
	assistantRoute "campussphere_backend/internals/features/assistant/route"
	clubRoute "campussphere_backend/internals/features/clubs/route"
	communityRoute "campussphere_backend/internals/features/community/route"
	eventRoute "campussphere_backend/internals/features/events/route"
	facultyRoute "campussphere_backend/internals/features/faculty/route"
	resourceRoute "campussphere_backend/internals/features/resources/route"
	transportRoute "campussphere_backend/internals/features/transport/route"
	authRoute "campussphere_backend/internals/features/users/auth/route"
	userRoute "campussphere_backend/internals/features/users/user/route"
	"campussphere_backend/internals/helpers/mailer"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	var m mailer.Mailer
	if configs.MailUsername != "" {
		m = mailer.NewSMTPMailer(configs.MailHost, configs.MailPort, configs.MailUsername, configs.MailPassword, configs.AppBaseURL)
	} else {
		m = mailer.LogMailer{}
	}

	log.Println("[INFO] Mounting base routes...")
	BaseRoutes(app, db)

	log.Println("[INFO] Mounting auth routes...")
	authRoute.AuthRoutes(app, db, m)

	log.Println("[INFO] Mounting user routes...")
	userRoute.UserRoutes(app, db)

	log.Println("[INFO] Mounting club routes...")
	clubRoute.ClubRoutes(app, db)

	log.Println("[INFO] Mounting alumni routes...")
	alumniRoute.AlumniRoutes(app, db)

	log.Println("[INFO] Mounting event routes...")
	eventRoute.EventRoutes(app, db)

	log.Println("[INFO] Mounting community routes...")
	communityRoute.CommunityRoutes(app, db)

	log.Println("[INFO] Mounting transport routes...")
	transportRoute.TransportRoutes(app, db)

	log.Println("[INFO] Mounting faculty routes...")
	facultyRoute.FacultyRoutes(app, db)

	log.Println("[INFO] Mounting admin routes...")
	adminRoute.AdminRoutes(app, db)

	log.Println("[INFO] Mounting assistant routes...")
	assistantRoute.AssistantRoutes(app, db)

	log.Println("[INFO] Mounting resource routes...")
	resourceRoute.ResourceRoutes(app, db)
}
