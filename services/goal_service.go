package services

import (
	"fmt"

	"github.com/Tzeak/yumlog/config"
	"github.com/Tzeak/yumlog/models"
)

// GoalInput is the user-editable part of a goal.
type GoalInput struct {
	Name               string      `json:"name" binding:"required"`
	Description        string      `json:"description"`
	Guidelines         string      `json:"guidelines"`
	EvaluationCriteria string      `json:"evaluationCriteria"`
	Targets            GoalTargets `json:"targets"`
}

func ListGoals(userID string) ([]models.Goal, error) {
	var goals []models.Goal
	err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}
	return goals, nil
}

func GetGoal(userID string, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	err := config.DB.
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func CreateGoal(userID string, in GoalInput) (*models.Goal, error) {
	goal := models.Goal{
		UserID:             userID,
		Name:               in.Name,
		Description:        in.Description,
		Guidelines:         in.Guidelines,
		EvaluationCriteria: in.EvaluationCriteria,
		TargetCalories:     in.Targets.Calories,
		TargetProtein:      in.Targets.Protein,
		TargetCarbs:        in.Targets.Carbs,
		TargetFat:          in.Targets.Fat,
	}
	if err := config.DB.Create(&goal).Error; err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return &goal, nil
}

func UpdateGoal(userID string, goalID uint, in GoalInput) (*models.Goal, error) {
	goal, err := GetGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.Name = in.Name
	goal.Description = in.Description
	goal.Guidelines = in.Guidelines
	goal.EvaluationCriteria = in.EvaluationCriteria
	goal.TargetCalories = in.Targets.Calories
	goal.TargetProtein = in.Targets.Protein
	goal.TargetCarbs = in.Targets.Carbs
	goal.TargetFat = in.Targets.Fat

	if err := config.DB.Save(goal).Error; err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

func DeleteGoal(userID string, goalID uint) error {
	res := config.DB.
		Where("id = ? AND user_id = ?", goalID, userID).
		Delete(&models.Goal{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete goal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("goal not found")
	}
	return nil
}
