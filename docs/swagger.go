// Package docs SafeRoute Assistant API.
//
// Диалоговый сервис оценки безопасности пешеходных маршрутов.
// Принимает маршрут и вопросы пользователя, анализирует криминальные
// инциденты, уличное освещение и инфраструктуру вдоль маршрута и
// формирует обоснованные ответы.
//
// Основные возможности:
// - Классификация запросов пользователя по типу анализа
// - Фильтрация инцидентов и фонарей по близости к маршруту
// - Временные и категориальные сводки преступности
// - Статистика преступности по районам (LGA)
// - Генерация ответов через языковую модель со структурированными блоками
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
